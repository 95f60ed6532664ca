package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mrlokans/carrental/internal/entities"
	"github.com/mrlokans/carrental/internal/utils"
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String() + "\n"
}

func formatID(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func carsTable(cars []entities.Car, currency string) string {
	rows := make([][]string, 0, len(cars))
	for _, c := range cars {
		rows = append(rows, []string{formatID(c.ID), c.Model, c.Brand, utils.FormatMoney(currency, c.PricePerDay), string(c.Status)})
	}
	return renderTable([]string{"ID", "Model", "Brand", "Price/day", "Status"}, rows)
}

func customersTable(customers []entities.Customer) string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{formatID(c.ID), c.Name, c.Phone, c.Email})
	}
	return renderTable([]string{"ID", "Name", "Phone", "Email"}, rows)
}

func rentalsTable(rentals []entities.Rental, currency string) string {
	rows := make([][]string, 0, len(rentals))
	for _, r := range rentals {
		rows = append(rows, []string{
			formatID(r.ID), r.Reference, formatID(r.CarID), formatID(r.CustomerID),
			r.StartDate, r.EndDate, utils.FormatMoney(currency, r.TotalPrice), string(r.Status),
		})
	}
	return renderTable([]string{"ID", "Ref", "Car", "Customer", "Start", "End", "Total", "Status"}, rows)
}
