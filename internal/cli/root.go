// Package cli is the carrental command tree: the server, the terminal UI
// and one-shot inventory, roster and booking commands.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/carrental/internal/config"
	"github.com/mrlokans/carrental/internal/database"
	"github.com/mrlokans/carrental/internal/logging"
	"github.com/mrlokans/carrental/internal/services"
)

// App carries the state shared by every command.
type App struct {
	Config  *config.Config
	Version string

	dbPath  string
	verbose bool
	logger  *zap.Logger
	out     io.Writer
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	app := &App{Config: cfg, Version: version}

	root := &cobra.Command{
		Use:           "carrental",
		Short:         "Car rental desk: cars, customers and rentals",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.out = cmd.OutOrStdout()
			return app.initLogger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&app.dbPath, "db", cfg.Database.Path, "Path to the SQLite database file")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCommand(app),
		newTUICommand(app),
		newCarCommand(app),
		newCustomerCommand(app),
		newRentalCommand(app),
		newExportCommand(app),
	)
	return root
}

func (a *App) initLogger() error {
	logCfg := a.Config.Logging
	if a.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// openDesk opens the database named by --db and returns a desk over it.
// The caller closes the database.
func (a *App) openDesk() (*services.RentalDesk, *database.Database, error) {
	logger := a.logger
	if !a.verbose {
		// One-shot commands print results; keep startup chatter out of the way.
		logger = zap.NewNop()
	}
	db, err := database.NewDatabase(a.dbPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return services.NewRentalDeskFromDB(db.DB), db, nil
}

// withDesk runs fn against a freshly opened desk.
func (a *App) withDesk(fn func(desk *services.RentalDesk) error) error {
	desk, db, err := a.openDesk()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(desk)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
