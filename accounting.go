package goldbook

// Tax rates applied to a positive operating profit.
var (
	IncomeTaxRate = A(23)
	VATRate       = A(14)
)

// Totals sums transaction amounts per type.
type Totals struct {
	Sales         Amount
	Purchases     Amount
	Expenses      Amount
	Analysis      Amount
	AnalysisCount int
}

// Sum accumulates the transactions into per type totals.
func Sum(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case Sell:
			t.Sales = t.Sales.Add(tx.TotalAmount)
		case Buy:
			t.Purchases = t.Purchases.Add(tx.TotalAmount)
		case Expense:
			t.Expenses = t.Expenses.Add(tx.TotalAmount)
		case Analysis:
			t.Analysis = t.Analysis.Add(tx.TotalAmount)
			t.AnalysisCount++
		}
	}
	return t
}

// Profit is the profit and tax statement of a set of transactions.
type Profit struct {
	Totals
	Gross     Amount // sales - purchases
	Operating Amount // gross + analysis - expenses
	IncomeTax Amount
	VAT       Amount
	Net       Amount
}

// ComputeProfit computes the profit statement. Taxes only apply to a
// positive operating profit.
func ComputeProfit(txs []Transaction) Profit {
	p := Profit{Totals: Sum(txs)}
	p.Gross = p.Sales.Sub(p.Purchases)
	p.Operating = p.Gross.Add(p.Analysis).Sub(p.Expenses)
	if p.Operating.IsPositive() {
		p.IncomeTax = p.Operating.Mul(IncomeTaxRate).Div(A(100))
		p.VAT = p.Operating.Mul(VATRate).Div(A(100))
	}
	p.Net = p.Operating.Sub(p.IncomeTax).Sub(p.VAT)
	return p
}

// Taxes returns the total of income tax and VAT.
func (p Profit) Taxes() Amount { return p.IncomeTax.Add(p.VAT) }

// Share is a partner's part of the net profit.
type Share struct {
	Partner Partner
	Percent Amount // of the total capital
	Profit  Amount
}

// PartnerShares splits net among partners pro rata of their capital. With
// no capital at all every share is zero.
func PartnerShares(partners []Partner, net Amount) (shares []Share, capital Amount) {
	for _, p := range partners {
		capital = capital.Add(p.Capital)
	}
	shares = make([]Share, 0, len(partners))
	for _, p := range partners {
		s := Share{Partner: p}
		if capital.IsPositive() {
			s.Percent = p.Capital.Div(capital).Mul(A(100))
			s.Profit = net.Mul(s.Percent).Div(A(100))
		}
		shares = append(shares, s)
	}
	return shares, capital
}

// Dashboard holds the headline figures of the shop.
type Dashboard struct {
	Profit
	PureStock  Amount // grams of pure gold bought minus sold
	StockValue Amount // PureStock at the 24 karat price
	Capital    Amount
	Liquidity  Amount // capital + sales + analysis - purchases - expenses
	OunceUSD   Amount
}

// NewDashboard computes the dashboard figures valued with the active settings.
func NewDashboard(txs []Transaction, partners []Partner, s Settings) Dashboard {
	d := Dashboard{Profit: ComputeProfit(txs)}
	for _, tx := range txs {
		if tx.Weight.IsZero() || tx.Karat == 0 {
			continue
		}
		switch tx.Type {
		case Buy:
			d.PureStock = d.PureStock.Add(tx.Karat.PureWeight(tx.Weight))
		case Sell:
			d.PureStock = d.PureStock.Sub(tx.Karat.PureWeight(tx.Weight))
		}
	}
	d.StockValue = d.PureStock.Mul(s.GoldPrice24)
	for _, p := range partners {
		d.Capital = d.Capital.Add(p.Capital)
	}
	d.Liquidity = d.Capital.Add(d.Sales).Add(d.Analysis).Sub(d.Purchases).Sub(d.Expenses)
	d.OunceUSD = OunceUSDFromGram(s.GoldPrice24, s.ExchangeRate)
	return d
}

// Valuation is the outcome of the purity calculator.
type Valuation struct {
	PureWeight  Amount
	Value       Amount // pure weight at the 24 karat price
	ManualTotal Amount // weight at a manually entered gram price
}

// Valuate values weight grams of karat gold.
func Valuate(weight Amount, karat Karat, gold24, manualPrice Amount) Valuation {
	pure := karat.PureWeight(weight)
	return Valuation{
		PureWeight:  pure,
		Value:       pure.Mul(gold24),
		ManualTotal: weight.Mul(manualPrice),
	}
}
