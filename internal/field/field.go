// Package field validates and normalizes the scalar values stored on a contact.
package field

import (
	"regexp"
	"strings"
	"time"
)

// BirthdayLayout is the DD.MM.YYYY layout used to parse and render birthdays.
const BirthdayLayout = "02.01.2006"

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	datePattern  = regexp.MustCompile(`^[0-9]{2}\.[0-9]{2}\.[0-9]{4}$`)
)

// Phone is a validated 10-digit phone number.
type Phone string

// ParsePhone validates raw as exactly ten decimal digits.
func ParsePhone(raw string) (Phone, error) {
	if !phonePattern.MatchString(raw) {
		return "", invalid(InvalidPhone, raw)
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// Email is a validated email address of the shape local@domain.tld.
// The check is deliberately loose and does not follow RFC 5322.
type Email string

// ParseEmail validates raw against the local@domain.tld shape.
func ParseEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return "", invalid(InvalidEmail, raw)
	}
	return Email(raw), nil
}

// LooksLikeEmail reports whether raw has the email shape.
func LooksLikeEmail(raw string) bool { return emailPattern.MatchString(raw) }

func (e Email) String() string { return string(e) }

// Address is free text with no structure beyond being non-empty.
type Address string

// ParseAddress accepts any string that is not blank.
func ParseAddress(raw string) (Address, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalid(InvalidAddress, raw)
	}
	return Address(raw), nil
}

func (a Address) String() string { return string(a) }

// Birthday is a calendar date without a time component.
type Birthday struct {
	date time.Time // UTC midnight.
}

// ParseBirthday parses raw in DD.MM.YYYY form. Impossible dates such as
// 31.02.2000 are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	if !datePattern.MatchString(raw) {
		return Birthday{}, invalid(InvalidDate, raw)
	}
	t, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, invalid(InvalidDate, raw)
	}
	return Birthday{date: t}, nil
}

// LooksLikeDate reports whether raw has the DD.MM.YYYY shape, without checking
// that the date exists.
func LooksLikeDate(raw string) bool { return datePattern.MatchString(raw) }

// NewBirthday builds a Birthday from its calendar parts.
func NewBirthday(year int, month time.Month, day int) Birthday {
	return Birthday{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (b Birthday) Year() int { return b.date.Year() }
func (b Birthday) Month() time.Month { return b.date.Month() }
func (b Birthday) Day() int { return b.date.Day() }
func (b Birthday) IsZero() bool { return b.date.IsZero() }

// Date returns the birthday as a UTC midnight time.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) Equal(o Birthday) bool { return b.date.Equal(o.date) }

// String renders the birthday as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }

// ValidateName rejects blank contact names.
func ValidateName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return invalid(InvalidName, raw)
	}
	return nil
}
