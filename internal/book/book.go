package book

import (
	"errors"
	"time"
)

// errDayOutOfRange is returned when a birthday cannot be projected onto
// the query year (Feb 29 outside a leap year).
var errDayOutOfRange = errors.New("day is out of range for month")

// Book is the address book: records keyed by contact name, iterated in
// insertion order.
type Book struct {
	records map[string]*Record
	order   []string
}

// New returns an empty Book.
func New() *Book {
	return &Book{records: make(map[string]*Record)}
}

// Add inserts the record under its name. A record whose name collides
// with an existing entry replaces it (last-write-wins) while keeping the
// original position in iteration order.
func (b *Book) Add(r *Record) {
	if _, ok := b.records[r.Name()]; !ok {
		b.order = append(b.order, r.Name())
	}
	b.records[r.Name()] = r
}

// Get returns the record for name and whether it exists.
func (b *Book) Get(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Contains reports whether a record exists for name.
func (b *Book) Contains(name string) bool {
	_, ok := b.records[name]
	return ok
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

// Records returns all records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// BirthdaysWithin returns, in insertion order, the names of contacts
// whose birthday falls within [today, today+days], comparing at day
// granularity with both ends inclusive.
//
// Each birthday is projected onto today's year. Two observed behaviors
// are deliberately preserved rather than fixed: a Feb-29 birthday fails
// the whole query when today's year is not a leap year, and candidates
// never roll into the next year, so birthdays shortly after an upcoming
// New Year are missed.
func (b *Book) BirthdaysWithin(today time.Time, days int) ([]string, error) {
	start := truncateToDay(today)
	end := start.AddDate(0, 0, days)

	var names []string
	for _, name := range b.order {
		bd, ok := b.records[name].Birthday()
		if !ok {
			continue
		}
		candidate := time.Date(start.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, today.Location())
		// time.Date normalizes impossible dates; treat that as failure.
		if candidate.Month() != bd.Month() || candidate.Day() != bd.Day() {
			return nil, errDayOutOfRange
		}
		if !candidate.Before(start) && !candidate.After(end) {
			names = append(names, name)
		}
	}
	return names, nil
}

// truncateToDay strips the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
