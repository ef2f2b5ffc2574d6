package goldbook

// TroyOunce is the number of grams in a troy ounce used for price conversions.
var TroyOunce = mustAmount("31.1035")

// MarketData is a gold price snapshot in local currency. It is never persisted.
type MarketData struct {
	Gold24        Amount `json:"gold24"`
	Gold21        Amount `json:"gold21"`
	Gold18        Amount `json:"gold18"`
	USD           Amount `json:"usd"` // local currency per USD
	OuncePriceUSD Amount `json:"ouncePriceUSD,omitzero"`
	Source        string `json:"source"`
}

// Valid reports whether the snapshot carries a usable 24 karat price.
func (m MarketData) Valid() bool { return m.Gold24.IsPositive() }

// GramPrices derives the floored 24, 21 and 18 karat gram prices from the
// price of one troy ounce of pure gold. 21 and 18 are derived from the
// floored 24 karat price.
func GramPrices(ounce Amount) (gold24, gold21, gold18 Amount) {
	gold24 = ounce.Div(TroyOunce).Floor()
	gold21 = gold24.Mul(K21.Purity()).Floor()
	gold18 = gold24.Mul(K18.Purity()).Floor()
	return
}

// OunceUSDFromGram estimates the USD ounce price from a local 24 karat gram
// price and the local per USD rate. It returns zero when usd is not positive.
func OunceUSDFromGram(gold24, usd Amount) Amount {
	if !usd.IsPositive() {
		return Amount{}
	}
	return gold24.Mul(TroyOunce).Div(usd).Round(0)
}
