package tmdb

import (
	"bytes"
	"encoding/json"
	"time"
)

// Date is a calendar date as the service encodes it ("2006-01-02").
// Empty or malformed values decode to the zero Date instead of failing.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	d.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	if len(s) > len(dateLayout) {
		// some endpoints return full timestamps
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
		s = s[:len(dateLayout)]
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// MarshalYAML renders the date in the wire layout.
func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(dateLayout), nil
}

// String returns the date in the wire layout, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Year returns the year, or 0 for the zero Date.
func (d Date) Year() int {
	if d.IsZero() {
		return 0
	}
	return d.Time.Year()
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
