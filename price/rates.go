package price

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etnz/goldbook"
)

// Rates are USD based exchange rates.
type Rates struct {
	Local goldbook.Amount // local currency per USD, rounded to 2 decimals
	XAU   goldbook.Amount // troy ounces of gold per USD
}

// RateSource fetches the exchange rates of a local currency.
type RateSource interface {
	Rates(ctx context.Context, currency string) (Rates, error)
}

// DefaultRatesURL is the open exchange rate endpoint for USD.
const DefaultRatesURL = "https://open.er-api.com/v6/latest/USD"

// ExchangeRates reads the open exchange rate API.
type ExchangeRates struct {
	URL    string
	Client *http.Client
}

func (e *ExchangeRates) Rates(ctx context.Context, currency string) (Rates, error) {
	data, err := jwget(ctx, e.Client, e.URL, nil)
	if err != nil {
		return Rates{}, err
	}
	local, err := amountAt("$.rates."+currency, data)
	if err != nil {
		return Rates{}, fmt.Errorf("no %s rate: %w", currency, err)
	}
	r := Rates{Local: local.Round(2)}
	// XAU is optional, only the global calculation needs it.
	if xau, err := amountAt("$.rates.XAU", data); err == nil {
		r.XAU = xau
	}
	return r, nil
}
