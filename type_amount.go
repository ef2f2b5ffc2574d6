package goldbook

import (
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact decimal number: a weight in grams, a price, a percentage.
//
// Unlike decimal.Decimal it is persisted as a bare JSON number, which keeps
// backups readable and compatible with hand-edited files.
type Amount struct {
	value decimal.Decimal
}

// A returns value as an Amount.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string like "12.5".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func mustAmount(s string) Amount { return Amount{value: decimal.RequireFromString(s)} }

func (a Amount) Decimal() decimal.Decimal        { return a.value }
func (a Amount) Equal(b Amount) bool             { return a.value.Equal(b.value) }
func (a Amount) Add(b Amount) Amount             { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount             { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount             { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Div(b Amount) Amount             { return Amount{value: a.value.Div(b.value)} }
func (a Amount) Neg() Amount                     { return Amount{value: a.value.Neg()} }
func (a Amount) Floor() Amount                   { return Amount{value: a.value.Floor()} }
func (a Amount) Round(places int32) Amount       { return Amount{value: a.value.Round(places)} }
func (a Amount) LessThan(b Amount) bool          { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool       { return a.value.GreaterThan(b.value) }
func (a Amount) IsNegative() bool                { return a.value.IsNegative() }
func (a Amount) IsPositive() bool                { return a.value.IsPositive() }
func (a Amount) IsZero() bool                    { return a.value.IsZero() }
func (a Amount) IntPart() int64                  { return a.value.IntPart() }
func (a Amount) InexactFloat64() float64         { return a.value.InexactFloat64() }
func (a Amount) String() string                  { return a.value.String() }
func (a Amount) StringFixed(places int32) string { return a.value.StringFixed(places) }

// Max returns the greater of a and b.
func (a Amount) Max(b Amount) Amount {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// MarshalJSON writes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a quoted number or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.value.UnmarshalJSON(b)
}
