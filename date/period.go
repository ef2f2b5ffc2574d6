package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar period a report covers.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Yearly
)

var periodNames = [...]string{Daily: "day", Weekly: "week", Monthly: "month", Yearly: "year"}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodNames) {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod reads "day", "week", "month" or "year", also accepting
// "daily", "weekly", "monthly" and "yearly".
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(s)
	for p, name := range periodNames {
		if s == name || s == strings.TrimSuffix(name, "y")+"ily" || s == name+"ly" {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want day, week, month or year", s)
}

// StartOf returns the first day of the period holding d. The shop's week
// starts on Saturday.
func (d Date) StartOf(p Period) Date {
	t := d.time()
	switch p {
	case Weekly:
		return d.Add(-((int(t.Weekday()) - int(time.Saturday) + 7) % 7))
	case Monthly:
		return New(t.Year(), t.Month(), 1)
	case Yearly:
		return New(t.Year(), time.January, 1)
	}
	return d
}

// EndOf returns the last day of the period holding d.
func (d Date) EndOf(p Period) Date {
	t := d.time()
	switch p {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(t.Year(), t.Month()+1, 0)
	case Yearly:
		return New(t.Year()+1, time.January, 0)
	}
	return d
}
