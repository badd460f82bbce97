// Package contact holds contact records and the name-keyed address book.
package contact

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/smileynet/assistant/internal/field"
)

var (
	ErrPhoneNotFound  = errors.New("contact: phone not found")
	ErrDuplicatePhone = errors.New("contact: phone already exists")
)

// PhoneOutcome reports what AddPhone did.
type PhoneOutcome string

const (
	PhoneAdded     PhoneOutcome = "added"
	PhoneDuplicate PhoneOutcome = "duplicate"
)

// Record aggregates the validated fields of one contact.
// Only the name is required; every other field is optional.
type Record struct {
	name     string
	phones   []field.Phone
	email    *field.Email
	address  *field.Address
	birthday *field.Birthday
}

// NewRecord creates a record with the given name and no other fields.
func NewRecord(name string) (*Record, error) {
	if err := field.ValidateName(name); err != nil {
		return nil, err
	}
	return &Record{name: name}, nil
}

// Name returns the record's key within an address book.
func (r *Record) Name() string { return r.name }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []field.Phone { return slices.Clone(r.phones) }

func (r *Record) Email() (field.Email, bool) {
	if r.email == nil {
		return "", false
	}
	return *r.email, true
}

func (r *Record) Address() (field.Address, bool) {
	if r.address == nil {
		return "", false
	}
	return *r.address, true
}

func (r *Record) Birthday() (field.Birthday, bool) {
	if r.birthday == nil {
		return field.Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends raw unless the record already has it. A repeated phone
// returns PhoneDuplicate and leaves the record untouched.
func (r *Record) AddPhone(raw string) (PhoneOutcome, error) {
	p, err := field.ParsePhone(raw)
	if err != nil {
		return "", err
	}
	if slices.Contains(r.phones, p) {
		return PhoneDuplicate, nil
	}
	r.phones = append(r.phones, p)
	return PhoneAdded, nil
}

// RemovePhone deletes raw from the phone list.
func (r *Record) RemovePhone(raw string) error {
	i := slices.Index(r.phones, field.Phone(raw))
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, raw)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw in place, keeping its position.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := slices.Index(r.phones, field.Phone(oldRaw))
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, oldRaw)
	}
	p, err := field.ParsePhone(newRaw)
	if err != nil {
		return err
	}
	if p == r.phones[i] {
		return nil
	}
	if slices.Contains(r.phones, p) {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, newRaw)
	}
	r.phones[i] = p
	return nil
}

// SetEmail validates raw and overwrites the email.
func (r *Record) SetEmail(raw string) error {
	e, err := field.ParseEmail(raw)
	if err != nil {
		return err
	}
	r.email = &e
	return nil
}

// SetAddress validates raw and overwrites the address.
func (r *Record) SetAddress(raw string) error {
	a, err := field.ParseAddress(raw)
	if err != nil {
		return err
	}
	r.address = &a
	return nil
}

// SetBirthday parses raw as DD.MM.YYYY and overwrites the birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := field.ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// String renders the record on a single line.
func (r *Record) String() string {
	phones := "no phones"
	if len(r.phones) > 0 {
		parts := make([]string, len(r.phones))
		for i, p := range r.phones {
			parts[i] = p.String()
		}
		phones = strings.Join(parts, "; ")
	}

	birthday, email, address := "not set", "not set", "not set"
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	if r.email != nil {
		email = r.email.String()
	}
	if r.address != nil {
		address = r.address.String()
	}

	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s, email: %s, address: %s",
		r.name, phones, birthday, email, address)
}
