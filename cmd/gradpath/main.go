package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gradpath/internal/cache"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/cli"
	"github.com/alexanderramin/gradpath/internal/config"
	"github.com/alexanderramin/gradpath/internal/db"
	"github.com/alexanderramin/gradpath/internal/logging"
	"github.com/alexanderramin/gradpath/internal/repository"
	"github.com/alexanderramin/gradpath/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store := catalog.NewStore(catalog.Options{Strict: cfg.StrictCatalog}, log.Named("catalog"))
	opts := []service.Option{service.WithObserver(service.NewLogUseCaseObserver(log.Named("service")))}

	if cfg.Archive {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer database.Close()
		opts = append(opts, service.WithArchive(
			repository.NewSQLitePlanArchive(database, db.NewSQLiteUnitOfWork(database)),
		))
	}

	var cacheStore cache.Store = cache.NewMemory()
	if cfg.RedisURL != "" {
		client, err := cache.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer client.Close()
		cacheStore = cache.NewRedis(client)
	}
	if cfg.CacheTTL > 0 {
		opts = append(opts, service.WithCache(cache.New(cacheStore, cfg.CacheTTL, log.Named("cache"))))
	}

	app := &cli.App{
		Plans:    service.NewPlanService(store, cfg.CatalogPath, opts...),
		Catalogs: store,
		Config:   cfg,
		Log:      log,
		IsInteractive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
	}
	log.Debug("configured", zap.Bool("archive", cfg.Archive), zap.Bool("redis", cfg.RedisURL != ""))

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
