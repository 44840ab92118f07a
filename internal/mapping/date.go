package mapping

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the time layout of a Date's string form.
const DateLayout = "20060102"

// ErrInvalidDate is returned when a value is not an 8-digit calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date encoded as the integer YYYYMMDD.
type Date int

// ParseDate parses an 8-digit YYYYMMDD string, rejecting anything that is
// not a real calendar day (19920231, 19921301, ...).
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return 0, fmt.Errorf("%w: %q is not 8 digits", ErrInvalidDate, s)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return Date(t.Year()*10000 + int(t.Month())*100 + t.Day()), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests and constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the zero-padded YYYYMMDD form.
func (d Date) String() string {
	return fmt.Sprintf("%08d", int(d))
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, d.String())
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == 0
}

// DaysAfter returns the number of days from other to d.
func (d Date) DaysAfter(other Date) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

// UnmarshalYAML accepts both bare integers and quoted strings.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

// MarshalText renders the zero-padded form, which also keeps JSON output
// as strings rather than numbers.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the zero-padded form.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
