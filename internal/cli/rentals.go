package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/carrental/internal/services"
	"github.com/mrlokans/carrental/internal/utils"
)

func newRentalCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rental",
		Short: "Book, return and list rentals",
	}

	var input services.BookingInput
	book := &cobra.Command{
		Use:   "book",
		Short: "Book an available car for an inclusive date range",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				rental, err := desk.BookRental(input)
				if err != nil {
					return err
				}
				app.printf("Rental #%d (%s) booked. Total %s.\n",
					rental.ID, rental.Reference, utils.FormatMoney(app.Config.UI.Currency, rental.TotalPrice))
				return nil
			})
		},
	}
	book.Flags().StringVar(&input.CarID, "car", "", "Car ID")
	book.Flags().StringVar(&input.CustomerID, "customer", "", "Customer ID")
	book.Flags().StringVar(&input.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	book.Flags().StringVar(&input.EndDate, "end", "", "End date (YYYY-MM-DD)")

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List rentals",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			filter, err := services.ParseRentalStatus(status)
			if err != nil {
				return err
			}
			return app.withDesk(func(desk *services.RentalDesk) error {
				rentals, err := desk.ListRentals(filter)
				if err != nil {
					return err
				}
				app.printf("%s", rentalsTable(rentals, app.Config.UI.Currency))
				return nil
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "Filter by status: active or returned")

	ret := &cobra.Command{
		Use:   "return ID",
		Short: "Return the car of an active rental",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rentalID, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			return app.withDesk(func(desk *services.RentalDesk) error {
				if _, err := desk.ReturnRental(rentalID); err != nil {
					return err
				}
				app.printf("Car returned successfully.\n")
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a rental, releasing its car if still active",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rentalID, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			return app.withDesk(func(desk *services.RentalDesk) error {
				if err := desk.DeleteRental(rentalID); err != nil {
					return err
				}
				app.printf("Rental #%d deleted.\n", rentalID)
				return nil
			})
		},
	}

	cmd.AddCommand(book, list, ret, del)
	return cmd
}
