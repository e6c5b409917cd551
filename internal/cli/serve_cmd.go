package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *App) *cobra.Command {
	var (
		addr       string
		catalogDir string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listen := domain.CoalesceStr(addr, a.Config.Addr)
			log := a.logger()
			root := catalogDir
			if root == "" && a.Config.CatalogPath != "" {
				root = filepath.Dir(a.Config.CatalogPath)
			}
			srv := server.New(a.Plans, listen,
				server.WithLogger(log.Named("http")),
				server.WithCatalogRoot(root))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(gctx) })
			if watch && a.Catalogs != nil && a.Config.CatalogPath != "" {
				g.Go(func() error { return a.Catalogs.Watch(gctx, a.Config.CatalogPath) })
			}
			log.Info("serving", zap.String("addr", listen), zap.String("catalog_dir", root), zap.Bool("watch", watch))
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from GRADPATH_ADDR)")
	cmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "Directory clients may name catalogs from (default: the default catalog's directory)")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload the catalog when its file changes")

	return cmd
}
