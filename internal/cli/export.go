package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/carrental/internal/database/settings"
	"github.com/mrlokans/carrental/internal/exporters"
	"github.com/mrlokans/carrental/internal/tasks"
)

func newExportCommand(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write cars, customers and rentals to CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := app.openDesk()
			if err != nil {
				return err
			}
			defer db.Close()

			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			result, err := tasks.RunExport(cmd.Context(),
				exporters.NewListingExporter(sqlDB, dir),
				settings.NewRepository(db.DB),
				app.logger.Named("export"))
			if err != nil {
				return err
			}
			app.printf("Exported %d cars, %d customers, %d rentals to %s\n",
				result.Cars, result.Customers, result.Rentals, result.Dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", app.Config.Export.Dir, "Directory to write the export into")
	return cmd
}
