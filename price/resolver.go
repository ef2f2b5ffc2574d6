// Package price resolves the current gold price from a chain of online
// sources.
package price

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/goldbook"
	"github.com/sirupsen/logrus"
)

// Provider is one source of gold prices. rates are the exchange rates
// fetched before trying the providers, possibly zero.
type Provider interface {
	Name() string
	Price(ctx context.Context, currency string, rates Rates) (goldbook.MarketData, error)
}

// Resolver tries its providers in order and returns the first price with a
// positive 24 karat gram price. Calls are sequential, without retry or
// cache.
type Resolver struct {
	Currency  string
	Rates     RateSource
	Providers []Provider
	Timeout   time.Duration // per call, zero means no timeout
	Log       logrus.FieldLogger
}

// Config lists the endpoints and credentials of the default chain.
type Config struct {
	Currency     string        `mapstructure:"currency"`
	GoldAPIToken string        `mapstructure:"goldapi_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RatesURL     string        `mapstructure:"rates_url"`
	GoldAPIURL   string        `mapstructure:"goldapi_url"`
	ScrapeURL    string        `mapstructure:"scrape_url"`
	ProxyURL     string        `mapstructure:"proxy_url"`
}

// DefaultConfig returns the public endpoints for EGP.
func DefaultConfig() Config {
	return Config{
		Currency:   "EGP",
		Timeout:    10 * time.Second,
		RatesURL:   DefaultRatesURL,
		GoldAPIURL: DefaultGoldAPIURL,
		ScrapeURL:  DefaultScrapeURL,
		ProxyURL:   DefaultProxyURL,
	}
}

// NewResolver returns the default chain: GoldAPI, then the scraped page,
// then the global calculation.
func NewResolver(cfg Config, client *http.Client, log logrus.FieldLogger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	rates := &ExchangeRates{URL: cfg.RatesURL, Client: client}
	return &Resolver{
		Currency: cfg.Currency,
		Rates:    rates,
		Providers: []Provider{
			&GoldAPI{URL: cfg.GoldAPIURL, Token: cfg.GoldAPIToken, Client: client},
			&Scraper{URL: cfg.ScrapeURL, ProxyURL: cfg.ProxyURL, Client: client},
			&Global{Rates: rates},
		},
		Timeout: cfg.Timeout,
		Log:     log,
	}
}

func (r *Resolver) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}

func (r *Resolver) log() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// Resolve returns the current market data or an error wrapping
// goldbook.ErrNoPrice and every source failure.
func (r *Resolver) Resolve(ctx context.Context) (goldbook.MarketData, error) {
	var errs []error

	cctx, cancel := r.call(ctx)
	rates, err := r.Rates.Rates(cctx, r.Currency)
	cancel()
	if err != nil {
		r.log().WithError(err).Warn("exchange rate fetch failed")
		errs = append(errs, fmt.Errorf("exchange rates: %w", err))
	}

	for _, p := range r.Providers {
		if err := ctx.Err(); err != nil {
			return goldbook.MarketData{}, err
		}
		cctx, cancel := r.call(ctx)
		md, err := p.Price(cctx, r.Currency, rates)
		cancel()
		if err == nil && !md.Valid() {
			err = errors.New("no 24 karat price")
		}
		if err != nil {
			r.log().WithError(err).WithField("source", p.Name()).Warn("price source failed")
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if md.USD.IsZero() {
			md.USD = rates.Local
		}
		r.log().WithFields(logrus.Fields{"source": md.Source, "gold24": md.Gold24}).Debug("price resolved")
		return md, nil
	}
	return goldbook.MarketData{}, fmt.Errorf("%w: %w", goldbook.ErrNoPrice, errors.Join(errs...))
}
