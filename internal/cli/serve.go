package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrlokans/carrental/internal/entrypoint"
	"github.com/mrlokans/carrental/internal/services"
	"github.com/mrlokans/carrental/internal/tui"
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.serve(cmd.Context())
		},
	}
}

func (a *App) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := *a.Config
	cfg.Database.Path = a.dbPath
	return entrypoint.Run(ctx, &cfg, a.logger, a.Version)
}

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				return tui.Run(desk, app.Config.UI.Currency)
			})
		},
	}
}
