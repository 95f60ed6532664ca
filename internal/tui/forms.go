package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
)

// field is one labelled text input of a tab form.
type field struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	return field{label: label, input: ti}
}

// form is the input area of a tab. The last field may be a search box,
// which is kept out of add/book submissions.
type form struct {
	fields []field
	focus  int
}

func (f *form) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) next() { f.focusField(f.focus + 1) }
func (f *form) prev() { f.focusField(f.focus - 1) }

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

// reset clears the first n fields.
func (f *form) reset(n int) {
	for i := 0; i < n && i < len(f.fields); i++ {
		f.fields[i].input.SetValue("")
	}
}

const (
	carModel = iota
	carBrand
	carPrice
	carSearch
)

func newCarForm() form {
	f := form{fields: []field{
		newField("Model", "Corolla", 128),
		newField("Brand", "Toyota", 128),
		newField("Price/day", "40", 10),
		newField("Search", "model or brand", 64),
	}}
	f.focusField(0)
	return f
}

const (
	customerName = iota
	customerPhone
	customerEmail
	customerSearch
)

func newCustomerForm() form {
	f := form{fields: []field{
		newField("Name", "Ada Lovelace", 256),
		newField("Phone", "555-0100", 64),
		newField("Email", "ada@example.com", 255),
		newField("Search", "name", 64),
	}}
	f.focusField(0)
	return f
}

const (
	rentalCar = iota
	rentalCustomer
	rentalStart
	rentalEnd
)

func newRentalForm() form {
	f := form{fields: []field{
		newField("Car ID", "1", 10),
		newField("Customer ID", "1", 10),
		newField("Start date", "2006-01-02", 10),
		newField("End date", "2006-01-02", 10),
	}}
	f.focusField(0)
	return f
}

func newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
}

var (
	carColumns = []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Model", Width: 20},
		{Title: "Brand", Width: 16},
		{Title: "Price/day", Width: 12},
		{Title: "Status", Width: 10},
	}
	customerColumns = []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 16},
		{Title: "Email", Width: 28},
	}
	rentalColumns = []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Ref", Width: 10},
		{Title: "Car", Width: 6},
		{Title: "Customer", Width: 9},
		{Title: "Start", Width: 11},
		{Title: "End", Width: 11},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 10},
	}
)
