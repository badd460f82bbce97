package contact

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// DefaultBirthdayWindow is the look-ahead used when the caller gives none.
const DefaultBirthdayWindow = 7

// ErrNotFound indicates no record exists under the requested name.
var ErrNotFound = errors.New("contact: record not found")

// AddressBook maps contact names to records, remembering insertion order.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add stores r under its name. An existing record with the same name is
// replaced and keeps its original position.
func (b *AddressBook) Add(r *Record) {
	if _, ok := b.records[r.name]; !ok {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r, nil
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// UpcomingBirthdays returns the names of contacts whose next birthday falls
// within days of today, inclusive at both ends. A birthday already passed this
// year counts from next year's occurrence. Names come back in insertion order.
func (b *AddressBook) UpcomingBirthdays(today time.Time, days int) []string {
	start := dateOnly(today)

	var names []string
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		next := occurrence(start.Year(), bd.Month(), bd.Day())
		if next.Before(start) {
			next = occurrence(start.Year()+1, bd.Month(), bd.Day())
		}
		delta := daysBetween(start, next)
		if delta >= 0 && delta <= days {
			names = append(names, r.name)
		}
	}
	return names
}

// dateOnly drops the time of day, keeping the calendar date in t's location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// occurrence builds the birthday date in year. 29 February normalizes to
// 1 March in non-leap years.
func occurrence(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
