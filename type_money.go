package goldbook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency, printed the way the currency is
// written. Documents print whole units.
type Money struct {
	value decimal.Decimal
	cur   string // ISO code, "" when unknown
}

// M returns a Money of value in currency.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// MA returns the amount a in currency.
func MA(a Amount, currency string) Money { return Money{value: a.value, cur: currency} }

// format returns the currency's formatter. Unknown codes get go-money's
// default two digits formatter.
func (m Money) format() *money.Formatter {
	return money.New(0, m.cur).Currency().Formatter()
}

// String writes the money with its symbol and fraction digits, "$1,234.50".
func (m Money) String() string {
	f := m.format()
	return f.Format(m.value.Shift(int32(f.Fraction)).IntPart())
}

// Whole writes the money floored to whole units with thousands separators
// and no symbol, "27,630".
func (m Money) Whole() string {
	f := *m.format()
	f.Fraction, f.Grapheme, f.Template = 0, "", "1"
	if f.Thousand == "" {
		f.Thousand = ","
	}
	return f.Format(m.value.Floor().IntPart())
}

func (m Money) Currency() string   { return m.cur }
func (m Money) Amount() Amount     { return Amount{value: m.value} }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// Add sums two moneys. A money with no currency takes the other's;
// adding two different currencies is a programming error and panics.
func (m Money) Add(n Money) Money {
	cur := m.cur
	switch {
	case cur == "":
		cur = n.cur
	case n.cur != "" && n.cur != cur:
		panic("goldbook: adding " + n.cur + " to " + cur)
	}
	return Money{value: m.value.Add(n.value), cur: cur}
}

// Mul scales the money.
func (m Money) Mul(a Amount) Money { return Money{value: m.value.Mul(a.value), cur: m.cur} }

// Percent returns rate percent of the money.
func (m Money) Percent(rate Amount) Money { return m.Mul(rate).Div100() }

// Div100 divides the money by a hundred.
func (m Money) Div100() Money { return Money{value: m.value.Div(decimal.NewFromInt(100)), cur: m.cur} }
