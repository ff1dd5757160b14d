// Package book holds the in-memory address book: validated contact
// fields, records, and the birthday-window query.
package book

import (
	"errors"
	"time"
)

// BirthdayLayout is the wire format for birthdays (DD.MM.YYYY).
const BirthdayLayout = "02.01.2006"

// Sentinel errors for caller-checkable validation failures. The error
// text doubles as the user-facing reply, so it is worded for display.
var (
	ErrInvalidPhone    = errors.New("Phone number must be 10 digits")
	ErrInvalidBirthday = errors.New("Birthday must be in DD.MM.YYYY format")
)

// Phone is a validated phone number: exactly 10 decimal digits.
type Phone string

// ParsePhone validates s and returns it as a Phone.
func ParsePhone(s string) (Phone, error) {
	if len(s) != 10 {
		return "", ErrInvalidPhone
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return Phone(s), nil
}

// String returns the raw digit string.
func (p Phone) String() string {
	return string(p)
}

// Birthday is a validated calendar date parsed from DD.MM.YYYY.
type Birthday struct {
	t time.Time
}

// ParseBirthday validates s against BirthdayLayout. Impossible dates
// (30.02, or 29.02 outside leap years) are rejected.
func ParseBirthday(s string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return Birthday{}, ErrInvalidBirthday
	}
	return Birthday{t: t}, nil
}

// Month returns the calendar month of the birthday.
func (b Birthday) Month() time.Month {
	return b.t.Month()
}

// Day returns the day of month of the birthday.
func (b Birthday) Day() int {
	return b.t.Day()
}

// String renders the birthday back in DD.MM.YYYY form.
func (b Birthday) String() string {
	return b.t.Format(BirthdayLayout)
}
