package cli

import (
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/config"
	"github.com/alexanderramin/gradpath/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds what CLI commands need.
type App struct {
	Plans    service.PlanService
	Catalogs *catalog.Store
	Config   config.Config
	Log      *zap.Logger

	// IsInteractive reports whether stdin and stdout are a terminal. Forms
	// and the pager are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

// NewRootCmd creates the top-level "gradpath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gradpath",
		Short:         "Four-year high school course planner and A-G auditor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newAuditCmd(app),
		newCatalogCmd(app),
		newPlansCmd(app),
		newServeCmd(app),
	)

	return root
}
