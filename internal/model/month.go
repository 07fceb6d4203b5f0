package model

import (
	"fmt"
	"time"
)

// monthLayout is the wire format for month selectors ("2024-03").
const monthLayout = "2006-01"

// CurrentMonth returns the current calendar month in YYYY-MM form.
func CurrentMonth() string {
	return time.Now().Format(monthLayout)
}

// ParseMonth validates a YYYY-MM month string and returns it normalized.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t.Format(monthLayout), nil
}

// MonthLabel renders a YYYY-MM month string for display ("March 2024").
// Invalid input is returned unchanged.
func MonthLabel(s string) string {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return s
	}
	return t.Format("January 2006")
}

// ShiftMonth returns the month delta calendar months away from the given one.
// The input must already be a valid YYYY-MM string.
func ShiftMonth(s string, delta int) string {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return s
	}
	return t.AddDate(0, delta, 0).Format(monthLayout)
}
