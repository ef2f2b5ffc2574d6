package price

import (
	"context"
	"errors"

	"github.com/etnz/goldbook"
)

// Global derives the prices from the gold rate (XAU) reported by the
// exchange rate service.
type Global struct {
	Rates RateSource
}

func (*Global) Name() string { return "Global Market (Calc)" }

func (g *Global) Price(ctx context.Context, currency string, rates Rates) (goldbook.MarketData, error) {
	if rates.XAU.IsZero() || rates.Local.IsZero() {
		fresh, err := g.Rates.Rates(ctx, currency)
		if err != nil {
			return goldbook.MarketData{}, err
		}
		if rates.Local.IsZero() {
			rates.Local = fresh.Local
		}
		rates.XAU = fresh.XAU
	}
	if !rates.XAU.IsPositive() {
		return goldbook.MarketData{}, errors.New("no XAU rate")
	}
	ounceUSD := goldbook.A(1).Div(rates.XAU)
	md := goldbook.MarketData{
		USD:           rates.Local,
		OuncePriceUSD: ounceUSD.Round(0),
		Source:        g.Name(),
	}
	md.Gold24, md.Gold21, md.Gold18 = goldbook.GramPrices(ounceUSD.Mul(rates.Local))
	return md, nil
}
