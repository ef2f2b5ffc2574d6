// Package date provides a calendar day with no time of day, used by
// transactions, permissions and report filters.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the ISO-8601 day layout dates are written in.
const Layout = time.DateOnly

// lenientLayout also reads single digit months and days.
const lenientLayout = "2006-1-2"

// unixDay is the day number of 1970-01-01.
const unixDay = 719163

// Date is a calendar day. It is comparable with == and the zero value is
// the unset date.
type Date struct {
	n int // days since 0001-01-01, counting from 1
}

// New returns the date of year, month and day, normalized like time.Date:
// New(2025, 2, 30) is March 2nd.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{n: int(t.Unix()/86400) + unixDay}
}

// Today is the current local day.
func Today() Date { return New(time.Now().Date()) }

func (d Date) time() time.Time {
	return time.Unix(int64(d.n-unixDay)*86400, 0).UTC()
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.n == 0 }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.n < x.n }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.n > x.n }

// Add returns the date days later, or earlier when days is negative.
func (d Date) Add(days int) Date { return Date{n: d.n + days} }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// String returns the date as "2006-01-02", or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Layout)
}

// Parse reads "2025-07-01" or "2025-7-1". Timestamps such as
// "2025-07-01T10:00:00.000Z" are cut to their day.
func Parse(s string) (Date, error) {
	if len(s) > len(Layout) && s[len(Layout)] == 'T' {
		s = s[:len(Layout)]
	}
	t, err := time.Parse(lenientLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

// MarshalJSON writes the date as a string, "" when unset.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads a date string. "" and null are the unset date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
