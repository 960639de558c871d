package domain

import (
	"database/sql/driver" // For storing dates as DATE columns
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals to and from
// "YYYY-MM-DD" JSON strings and is stored in a DATE column.
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String returns the date formatted as "YYYY-MM-DD"
func (d Date) String() string {
	return d.Format(DateLayout)
}

// After reports whether d falls after other
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so GORM writes the plain date string
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner, accepting DATE columns scanned as time.Time,
// string, or raw bytes (a trailing time component, if any, is dropped)
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)] // Drop any time suffix
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
