package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date without time-of-day or zone. The zero value means
// "unset". It marshals to JSON as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the date. Anchoring both operands to the same
// instant-of-day keeps day arithmetic free of zone and DST effects.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// MarshalJSON encodes the date as "2006-01-02", or JSON null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2006-01-02", null, and the empty string. Anything
// else decodes to the unset date rather than an error: a donor record with a
// garbled date must stay loadable, and an unset date is the safe reading.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if s == nil || *s == "" {
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	*d = parsed
	return nil
}
