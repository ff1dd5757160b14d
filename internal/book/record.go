package book

import (
	"fmt"
	"strings"
)

// Record is one contact: an immutable name, an ordered list of phone
// numbers (duplicates allowed), and at most one birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a Record with the given name and no phones.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates value and appends it. Duplicates are permitted.
func (r *Record) AddPhone(value string) error {
	p, err := ParsePhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to value. Removing a phone that
// is not present is a no-op, not an error.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.String() != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces the first phone equal to old with a newly validated
// phone built from new. It reports whether a match was found; when no
// phone matches, nothing is validated or changed.
func (r *Record) EditPhone(old, new string) (bool, error) {
	for i, p := range r.phones {
		if p.String() == old {
			np, err := ParsePhone(new)
			if err != nil {
				return true, err
			}
			r.phones[i] = np
			return true, nil
		}
	}
	return false, nil
}

// SetBirthday validates value and sets it, overwriting any existing
// birthday.
func (r *Record) SetBirthday(value string) error {
	b, err := ParseBirthday(value)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// String renders the contact as a single display line.
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	s := fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(phones, ", "))
	if r.birthday != nil {
		s += fmt.Sprintf(", birthday: %s", r.birthday)
	}
	return s
}
