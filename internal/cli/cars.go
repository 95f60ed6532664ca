package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/carrental/internal/services"
)

func newCarCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "car",
		Short: "Manage the car inventory",
	}

	var input services.CarInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a car (it starts AVAILABLE)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				car, err := desk.AddCar(input)
				if err != nil {
					return err
				}
				app.printf("Car #%d added.\n", car.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&input.Model, "model", "", "Car model")
	add.Flags().StringVar(&input.Brand, "brand", "", "Car brand")
	add.Flags().StringVar(&input.Price, "price", "", "Price per day (whole units)")
	_ = add.MarkFlagRequired("price")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all cars",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				cars, err := desk.ListCars()
				if err != nil {
					return err
				}
				app.printf("%s", carsTable(cars, app.Config.UI.Currency))
				return nil
			})
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search cars by model or brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				cars, err := desk.SearchCars(args[0])
				if err != nil {
					return err
				}
				app.printf("%s", carsTable(cars, app.Config.UI.Currency))
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a car",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			carID, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			return app.withDesk(func(desk *services.RentalDesk) error {
				if err := desk.DeleteCar(carID); err != nil {
					return err
				}
				app.printf("Car #%d deleted.\n", carID)
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, search, del)
	return cmd
}

func parseArgID(arg string) (uint, error) {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, services.ErrInvalidID
	}
	return uint(n), nil
}
