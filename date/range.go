package date

// Range represents a range of dates, boundaries included. A zero bound
// is open.
type Range struct{ From, To Date }

// NewRange return the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// String returns "from..to", with empty open bounds.
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
