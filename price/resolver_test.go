package price

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/goldbook"
)

const pricePage = `<html><body>
<table>
<tr><td>سعر جرام الذهب عيار 24</td><td><span>4,120</span> جنيه</td></tr>
<tr><td>سعر جرام الذهب عيار 21</td><td><span>3,605</span> جنيه</td></tr>
<tr><td>سعر جرام الذهب عيار 18</td>
<td><span>3,090</span> جنيه</td></tr>
</table></body></html>`

// fakeMarket serves the three upstream APIs.
type fakeMarket struct {
	rates     string // rates JSON, "" fails
	goldPrice string // goldapi JSON, "" fails
	page      string // scraped page, "" fails
	token     string // last x-access-token seen
	rateHits  int    // calls to the rates API
}

func (f *fakeMarket) server(t *testing.T) *httptest.Server {
	t.Helper()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if body == "" {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		f.rateHits++
		serve(f.rates)(w, r)
	})
	mux.HandleFunc("/goldapi/EGP", func(w http.ResponseWriter, r *http.Request) {
		f.token = r.Header.Get("x-access-token")
		serve(f.goldPrice)(w, r)
	})
	mux.HandleFunc("/proxy", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") != "https://page.test/" || f.page == "" {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"contents": f.page, "status": map[string]any{"http_code": 200}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeMarket) resolver(t *testing.T, token string) *Resolver {
	srv := f.server(t)
	cfg := DefaultConfig()
	cfg.GoldAPIToken = token
	cfg.RatesURL = srv.URL + "/rates"
	cfg.GoldAPIURL = srv.URL + "/goldapi/"
	cfg.ScrapeURL = "https://page.test/"
	cfg.ProxyURL = srv.URL + "/proxy?url="
	return NewResolver(cfg, srv.Client(), nil)
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name   string
		market fakeMarket
		token  string
		want   goldbook.MarketData
	}{
		{
			name:   "gold api",
			market: fakeMarket{rates: `{"rates":{"EGP":50.00,"XAU":0.0004}}`, goldPrice: `{"price":3100}`, page: pricePage},
			token:  "secret",
			want:   goldbook.MarketData{Gold24: goldbook.A(99), Gold21: goldbook.A(86), Gold18: goldbook.A(74), USD: goldbook.A(50), OuncePriceUSD: goldbook.A(62), Source: "GoldAPI.io"},
		},
		{
			name:   "scrape when gold api fails",
			market: fakeMarket{rates: `{"rates":{"EGP":50.004}}`, page: pricePage},
			token:  "secret",
			want:   goldbook.MarketData{Gold24: goldbook.A(4120), Gold21: goldbook.A(3605), Gold18: goldbook.A(3090), USD: goldbook.A(50), OuncePriceUSD: goldbook.A(2563), Source: "Gold-Price-Today.com"},
		},
		{
			name:   "scrape when gold api has no price",
			market: fakeMarket{rates: `{"rates":{"EGP":50}}`, goldPrice: `{"price":0}`, page: pricePage},
			token:  "secret",
			want:   goldbook.MarketData{Gold24: goldbook.A(4120), Gold21: goldbook.A(3605), Gold18: goldbook.A(3090), USD: goldbook.A(50), OuncePriceUSD: goldbook.A(2563), Source: "Gold-Price-Today.com"},
		},
		{
			name:   "global calculation",
			market: fakeMarket{rates: `{"rates":{"EGP":50,"XAU":0.0004}}`, goldPrice: `{"price":3100}`},
			token:  "", // no token, gold api is skipped
			want:   goldbook.MarketData{Gold24: goldbook.A(4018), Gold21: goldbook.A(3515), Gold18: goldbook.A(3013), USD: goldbook.A(50), OuncePriceUSD: goldbook.A(2500), Source: "Global Market (Calc)"},
		},
		{
			name:   "gold api without exchange rate",
			market: fakeMarket{goldPrice: `{"price":3100}`},
			token:  "secret",
			want:   goldbook.MarketData{Gold24: goldbook.A(99), Gold21: goldbook.A(86), Gold18: goldbook.A(74), Source: "GoldAPI.io"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.market.resolver(t, tc.token).Resolve(context.Background())
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if !equalMarket(got, tc.want) {
				t.Errorf("Resolve() = %+v, want %+v", got, tc.want)
			}
			// A second call would mean the global calculation ran and
			// fetched the rates again.
			if tc.market.rateHits != 1 {
				t.Errorf("rates fetched %d times, want 1", tc.market.rateHits)
			}
		})
	}
}

func equalMarket(a, b goldbook.MarketData) bool {
	return a.Gold24.Equal(b.Gold24) && a.Gold21.Equal(b.Gold21) && a.Gold18.Equal(b.Gold18) &&
		a.USD.Equal(b.USD) && a.OuncePriceUSD.Equal(b.OuncePriceUSD) && a.Source == b.Source
}

func TestResolve_AccessToken(t *testing.T) {
	m := &fakeMarket{rates: `{"rates":{"EGP":50}}`, goldPrice: `{"price":3100}`}
	if _, err := m.resolver(t, "secret").Resolve(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.token != "secret" {
		t.Errorf("x-access-token = %q, want secret", m.token)
	}
}

func TestResolve_NoPrice(t *testing.T) {
	m := &fakeMarket{rates: `{"rates":{"EGP":50}}`, page: "<html>maintenance</html>"}
	_, err := m.resolver(t, "secret").Resolve(context.Background())
	if !errors.Is(err, goldbook.ErrNoPrice) {
		t.Errorf("Resolve() error = %v, want ErrNoPrice", err)
	}
}

func TestResolve_Canceled(t *testing.T) {
	m := &fakeMarket{rates: `{"rates":{"EGP":50}}`, goldPrice: `{"price":3100}`}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.resolver(t, "secret").Resolve(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestParseGramPrice(t *testing.T) {
	testCases := []struct {
		page  string
		karat int
		want  string
	}{
		{pricePage, 24, "4120"},
		{pricePage, 18, "3090"},
		{"سعر جرام الذهب عيار 21 اليوم 987 جنيه", 21, "987"},
		{"سعر جرام الذهب عيار 21 اليوم 12,345,678", 21, "12345678"},
	}
	for _, tc := range testCases {
		got, err := parseGramPrice(tc.page, tc.karat)
		if err != nil {
			t.Errorf("parseGramPrice(%d) failed: %v", tc.karat, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("parseGramPrice(%d) = %v, want %v", tc.karat, got, tc.want)
		}
	}
	if _, err := parseGramPrice("nothing here", 24); err == nil {
		t.Errorf("parseGramPrice() on an empty page succeeded")
	}
}
