package goldbook

import "fmt"

// Karat is a gold purity expressed in parts per 1000 (875 is 21 karat).
type Karat int

const (
	K24 Karat = 1000
	K21 Karat = 875
	K18 Karat = 750
)

// Purity returns the fraction of pure gold, 0.875 for K21.
func (k Karat) Purity() Amount { return A(int(k)).Div(A(1000)) }

// PureWeight returns the pure gold content of weight grams.
func (k Karat) PureWeight(weight Amount) Amount { return weight.Mul(k.Purity()) }

// Label returns the usual karat label, "21K" for 875.
func (k Karat) Label() string {
	if k <= 0 {
		return "-"
	}
	return fmt.Sprintf("%sK", A(int(k)).Mul(A(24)).Div(A(1000)).Round(0).String())
}

// Valid reports whether k is within 1..1000.
func (k Karat) Valid() bool { return k > 0 && k <= K24 }
