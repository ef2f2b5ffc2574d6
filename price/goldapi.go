package price

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/goldbook"
)

// DefaultGoldAPIURL is the GoldAPI endpoint, the currency code is appended.
const DefaultGoldAPIURL = "https://www.goldapi.io/api/XAU/"

// GoldAPI asks the dedicated gold price API for the ounce price in local
// currency.
type GoldAPI struct {
	URL    string
	Token  string
	Client *http.Client
}

func (*GoldAPI) Name() string { return "GoldAPI.io" }

func (g *GoldAPI) Price(ctx context.Context, currency string, rates Rates) (goldbook.MarketData, error) {
	if g.Token == "" {
		return goldbook.MarketData{}, errors.New("no access token")
	}
	header := http.Header{}
	header.Set("x-access-token", g.Token)
	header.Set("Content-Type", "application/json")
	data, err := jwget(ctx, g.Client, g.URL+currency, header)
	if err != nil {
		return goldbook.MarketData{}, err
	}
	ounce, err := amountAt("$.price", data)
	if err != nil {
		return goldbook.MarketData{}, fmt.Errorf("no price: %w", err)
	}
	md := goldbook.MarketData{USD: rates.Local, Source: g.Name()}
	md.Gold24, md.Gold21, md.Gold18 = goldbook.GramPrices(ounce)
	if rates.Local.IsPositive() {
		md.OuncePriceUSD = ounce.Div(rates.Local).Round(0)
	}
	return md, nil
}
