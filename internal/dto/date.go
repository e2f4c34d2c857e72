package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a time.Time that marshals as a plain calendar date ("2006-01-02"),
// matching the date inputs the front end sends.
type Date struct {
	time.Time
}

// NewDate wraps a time.Time as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// UnmarshalJSON accepts "2006-01-02" and, for tolerance, full RFC3339 stamps.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}
