package entities

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is how rental dates are stored.
const DateLayout = "2006-01-02"

// inputLayout also accepts unpadded months and days (2024-1-5).
const inputLayout = "2006-1-2"

var (
	ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrTotalTooLarge    = errors.New("rental total is too large")
)

// ParseDate parses a rental date. Months and days may omit the leading zero.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(inputLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// NormalizeDate parses value and renders it in DateLayout.
func NormalizeDate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// RentalDays returns the inclusive number of days between start and end:
// a car picked up and returned on the same day is charged one day.
func RentalDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// TotalPrice computes the rental total for the given date strings.
// A total that does not fit in an int is rejected with ErrTotalTooLarge.
func TotalPrice(startDate, endDate string, pricePerDay int) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}
	total := days * pricePerDay
	if total/days != pricePerDay {
		return 0, fmt.Errorf("%w: %d days at %d", ErrTotalTooLarge, days, pricePerDay)
	}
	return total, nil
}
