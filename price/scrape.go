package price

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/etnz/goldbook"
)

const (
	// DefaultScrapeURL is the public page listing local gram prices.
	DefaultScrapeURL = "https://egypt.gold-price-today.com/"
	// DefaultProxyURL fetches a page and wraps it in a JSON envelope.
	DefaultProxyURL = "https://api.allorigins.win/get?url="
)

// gramPatterns match "price of a gram of karat NN gold" followed by the
// first digit group, with optional thousands separators.
var gramPatterns = map[int]*regexp.Regexp{
	24: regexp.MustCompile(`(?s)سعر جرام الذهب عيار 24.*?(\d{1,3}(?:,\d{3})*)`),
	21: regexp.MustCompile(`(?s)سعر جرام الذهب عيار 21.*?(\d{1,3}(?:,\d{3})*)`),
	18: regexp.MustCompile(`(?s)سعر جرام الذهب عيار 18.*?(\d{1,3}(?:,\d{3})*)`),
}

var notNumber = regexp.MustCompile(`[^0-9.]`)

// Scraper reads the gram prices from a public web page fetched through a
// proxy.
type Scraper struct {
	URL      string
	ProxyURL string
	Client   *http.Client
}

func (*Scraper) Name() string { return "Gold-Price-Today.com" }

func (s *Scraper) Price(ctx context.Context, _ string, rates Rates) (goldbook.MarketData, error) {
	data, err := jwget(ctx, s.Client, s.ProxyURL+url.QueryEscape(s.URL), nil)
	if err != nil {
		return goldbook.MarketData{}, err
	}
	page, err := stringAt("$.contents", data)
	if err != nil {
		return goldbook.MarketData{}, fmt.Errorf("no page contents: %w", err)
	}
	md := goldbook.MarketData{USD: rates.Local, Source: s.Name()}
	for karat, dst := range map[int]*goldbook.Amount{24: &md.Gold24, 21: &md.Gold21, 18: &md.Gold18} {
		if *dst, err = parseGramPrice(page, karat); err != nil {
			return goldbook.MarketData{}, err
		}
	}
	md.OuncePriceUSD = goldbook.OunceUSDFromGram(md.Gold24, rates.Local)
	return md, nil
}

// parseGramPrice extracts the gram price of karat from the page.
func parseGramPrice(page string, karat int) (goldbook.Amount, error) {
	m := gramPatterns[karat].FindStringSubmatch(page)
	if m == nil {
		return goldbook.Amount{}, fmt.Errorf("no %d karat price in page", karat)
	}
	clean := strings.Trim(notNumber.ReplaceAllString(m[1], ""), ".")
	return goldbook.ParseAmount(clean)
}
