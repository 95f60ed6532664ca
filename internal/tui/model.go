// Package tui is the terminal front end of the rental desk: three tabs with
// a form, a table and key bindings over the same service layer as the web UI.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrlokans/carrental/internal/entities"
	"github.com/mrlokans/carrental/internal/services"
	"github.com/mrlokans/carrental/internal/utils"
)

// Desk is the slice of the rental desk the terminal UI drives.
type Desk interface {
	AddCar(input services.CarInput) (*entities.Car, error)
	DeleteCar(id uint) error
	SearchCars(query string) ([]entities.Car, error)
	AddCustomer(input services.CustomerInput) (*entities.Customer, error)
	DeleteCustomer(id uint) error
	SearchCustomers(query string) ([]entities.Customer, error)
	BookRental(input services.BookingInput) (*entities.Rental, error)
	ReturnRental(id uint) (*entities.Rental, error)
	DeleteRental(id uint) error
	ListRentals(status entities.RentalStatus) ([]entities.Rental, error)
}

type tab int

const (
	tabCars tab = iota
	tabCustomers
	tabRentals
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabCars:
		return "Cars"
	case tabCustomers:
		return "Customers"
	default:
		return "Rentals"
	}
}

// loadedMsg carries fresh listings for all three tables.
type loadedMsg struct {
	cars      []entities.Car
	customers []entities.Customer
	rentals   []entities.Rental
	err       error
}

// actionMsg reports the outcome of an add, delete, book or return.
type actionMsg struct {
	tab    tab
	notice string
	err    error
	clear  bool // empty the form after an add or booking
}

// Model is the root bubbletea model.
type Model struct {
	desk     Desk
	currency string
	styles   Styles

	active tab
	forms  [tabCount]form
	tables [tabCount]table.Model

	carQuery      string
	customerQuery string

	status    string
	statusErr bool
	width     int
}

func New(desk Desk, currency string) Model {
	return Model{
		desk:     desk,
		currency: currency,
		styles:   DefaultStyles(),
		forms:    [tabCount]form{newCarForm(), newCustomerForm(), newRentalForm()},
		tables: [tabCount]table.Model{
			newTable(carColumns),
			newTable(customerColumns),
			newTable(rentalColumns),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// refresh reloads every table. Rentals change car status, so the tables
// are always reloaded together.
func (m Model) refresh() tea.Cmd {
	desk, carQuery, customerQuery := m.desk, m.carQuery, m.customerQuery
	return func() tea.Msg {
		var msg loadedMsg
		if msg.cars, msg.err = desk.SearchCars(carQuery); msg.err != nil {
			return msg
		}
		if msg.customers, msg.err = desk.SearchCustomers(customerQuery); msg.err != nil {
			return msg
		}
		msg.rentals, msg.err = desk.ListRentals("")
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.fillTables(msg)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.status, m.statusErr = msg.notice, false
		if msg.clear {
			m.forms[msg.tab].reset(submitFields(msg.tab))
		}
		return m, m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil
	case "ctrl+n":
		m.forms[m.active].next()
		return m, nil
	case "ctrl+p":
		m.forms[m.active].prev()
		return m, nil
	case "up", "down":
		var cmd tea.Cmd
		m.tables[m.active], cmd = m.tables[m.active].Update(msg)
		return m, cmd
	case "ctrl+a":
		return m, m.submit()
	case "ctrl+d":
		return m.deleteSelected()
	case "ctrl+t":
		return m.returnSelected()
	case "ctrl+f":
		switch m.active {
		case tabCars:
			m.carQuery = m.forms[tabCars].value(carSearch)
		case tabCustomers:
			m.customerQuery = m.forms[tabCustomers].value(customerSearch)
		default:
			return m, nil
		}
		return m, m.refresh()
	case "ctrl+r":
		m.carQuery, m.customerQuery = "", ""
		m.forms[tabCars].fields[carSearch].input.SetValue("")
		m.forms[tabCustomers].fields[customerSearch].input.SetValue("")
		m.status = ""
		return m, m.refresh()
	}

	f := &m.forms[m.active]
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return m, cmd
}

// submitFields is how many leading fields a successful add clears.
func submitFields(t tab) int {
	if t == tabRentals {
		return 4
	}
	return 3
}

func (m Model) submit() tea.Cmd {
	desk, f := m.desk, m.forms[m.active]
	switch m.active {
	case tabCars:
		input := services.CarInput{Model: f.value(carModel), Brand: f.value(carBrand), Price: f.value(carPrice)}
		return func() tea.Msg {
			car, err := desk.AddCar(input)
			if err != nil {
				return actionMsg{tab: tabCars, err: err}
			}
			return actionMsg{tab: tabCars, notice: fmt.Sprintf("Car #%d added.", car.ID), clear: true}
		}
	case tabCustomers:
		input := services.CustomerInput{Name: f.value(customerName), Phone: f.value(customerPhone), Email: f.value(customerEmail)}
		return func() tea.Msg {
			customer, err := desk.AddCustomer(input)
			if err != nil {
				return actionMsg{tab: tabCustomers, err: err}
			}
			return actionMsg{tab: tabCustomers, notice: fmt.Sprintf("Customer #%d added.", customer.ID), clear: true}
		}
	default:
		input := services.BookingInput{
			CarID:      f.value(rentalCar),
			CustomerID: f.value(rentalCustomer),
			StartDate:  f.value(rentalStart),
			EndDate:    f.value(rentalEnd),
		}
		currency := m.currency
		return func() tea.Msg {
			rental, err := desk.BookRental(input)
			if err != nil {
				return actionMsg{tab: tabRentals, err: err}
			}
			return actionMsg{tab: tabRentals, notice: fmt.Sprintf("Rental %s booked. Total %s.",
				rental.Reference, utils.FormatMoney(currency, rental.TotalPrice)), clear: true}
		}
	}
}

// selectedID reads the ID column of the highlighted row.
func (m Model) selectedID() (uint, bool) {
	row := m.tables[m.active].SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		m.status, m.statusErr = "Select a row to delete.", true
		return m, nil
	}

	desk, active := m.desk, m.active
	return m, func() tea.Msg {
		var err error
		switch active {
		case tabCars:
			err = desk.DeleteCar(id)
		case tabCustomers:
			err = desk.DeleteCustomer(id)
		default:
			err = desk.DeleteRental(id)
		}
		if err != nil {
			return actionMsg{tab: active, err: err}
		}
		return actionMsg{tab: active, notice: fmt.Sprintf("%s #%d deleted.", strings.TrimSuffix(active.String(), "s"), id)}
	}
}

func (m Model) returnSelected() (tea.Model, tea.Cmd) {
	if m.active != tabRentals {
		return m, nil
	}
	id, ok := m.selectedID()
	if !ok {
		m.status, m.statusErr = "Select a rental to return.", true
		return m, nil
	}

	desk := m.desk
	return m, func() tea.Msg {
		if _, err := desk.ReturnRental(id); err != nil {
			return actionMsg{tab: tabRentals, err: err}
		}
		return actionMsg{tab: tabRentals, notice: "Car returned successfully."}
	}
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = services.Message(err), true
}

func (m *Model) fillTables(msg loadedMsg) {
	carRows := make([]table.Row, 0, len(msg.cars))
	for _, c := range msg.cars {
		carRows = append(carRows, table.Row{
			strconv.FormatUint(uint64(c.ID), 10), c.Model, c.Brand,
			utils.FormatMoney(m.currency, c.PricePerDay), string(c.Status),
		})
	}
	m.tables[tabCars].SetRows(carRows)

	customerRows := make([]table.Row, 0, len(msg.customers))
	for _, c := range msg.customers {
		customerRows = append(customerRows, table.Row{
			strconv.FormatUint(uint64(c.ID), 10), c.Name, c.Phone, c.Email,
		})
	}
	m.tables[tabCustomers].SetRows(customerRows)

	rentalRows := make([]table.Row, 0, len(msg.rentals))
	for _, r := range msg.rentals {
		rentalRows = append(rentalRows, table.Row{
			strconv.FormatUint(uint64(r.ID), 10), r.Reference,
			strconv.FormatUint(uint64(r.CarID), 10), strconv.FormatUint(uint64(r.CustomerID), 10),
			r.StartDate, r.EndDate, utils.FormatMoney(m.currency, r.TotalPrice), string(r.Status),
		})
	}
	m.tables[tabRentals].SetRows(rentalRows)

	for i := range m.tables {
		if n := len(m.tables[i].Rows()); n > 0 && m.tables[i].Cursor() >= n {
			m.tables[i].SetCursor(n - 1)
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		style := m.styles.InactiveTab
		if t == m.active {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	f := m.forms[m.active]
	for _, fld := range f.fields {
		b.WriteString(m.styles.Label.Render(fld.label))
		b.WriteString(fld.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.tables[m.active].View())
	b.WriteString("\n\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Notice.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(helpText(m.active)))

	return m.styles.Frame.Render(b.String())
}

func helpText(t tab) string {
	common := "tab/shift+tab switch · ctrl+n/ctrl+p field · ↑/↓ select · ctrl+d delete · ctrl+r refresh · ctrl+c quit"
	switch t {
	case tabRentals:
		return "ctrl+a book · ctrl+t return · " + common
	default:
		return "ctrl+a add · ctrl+f search · " + common
	}
}

// Run starts the terminal UI and blocks until the operator quits.
func Run(desk Desk, currency string) error {
	_, err := tea.NewProgram(New(desk, currency), tea.WithAltScreen()).Run()
	return err
}
