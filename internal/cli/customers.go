package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/carrental/internal/services"
)

func newCustomerCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer roster",
	}

	var input services.CustomerInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				customer, err := desk.AddCustomer(input)
				if err != nil {
					return err
				}
				app.printf("Customer #%d added.\n", customer.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&input.Name, "name", "", "Customer name")
	add.Flags().StringVar(&input.Phone, "phone", "", "Phone number")
	add.Flags().StringVar(&input.Email, "email", "", "Email address")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				customers, err := desk.ListCustomers()
				if err != nil {
					return err
				}
				app.printf("%s", customersTable(customers))
				return nil
			})
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search customers by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.withDesk(func(desk *services.RentalDesk) error {
				customers, err := desk.SearchCustomers(args[0])
				if err != nil {
					return err
				}
				app.printf("%s", customersTable(customers))
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			customerID, err := parseArgID(args[0])
			if err != nil {
				return err
			}
			return app.withDesk(func(desk *services.RentalDesk) error {
				if err := desk.DeleteCustomer(customerID); err != nil {
					return err
				}
				app.printf("Customer #%d deleted.\n", customerID)
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, search, del)
	return cmd
}
