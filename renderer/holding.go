package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/goldbook"
)

// DashboardMarkdown renders the prices in use and the shop position. live is
// the last resolved market price, if any.
func DashboardMarkdown(d goldbook.Dashboard, live *goldbook.MarketData, s goldbook.Settings) string {
	var b strings.Builder
	active := s.Active(live)
	m := func(a goldbook.Amount) string { return s.Money(a).Whole() }

	title := s.Dashboard.HeroTitle
	if title == "" {
		title = s.Print.CompanyName
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	source := "manual"
	if active.PriceSource == goldbook.Live && live != nil && live.Valid() {
		source = live.Source
	}
	fmt.Fprintf(&b, "## Gold prices (%s)\n\n", source)
	fmt.Fprintln(&b, "| Karat | Price per gram |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| 24K | %s |\n", m(active.GoldPrice24))
	fmt.Fprintf(&b, "| 21K | %s |\n", m(active.GoldPrice21))
	fmt.Fprintf(&b, "| 18K | %s |\n", m(active.GoldPrice18))
	fmt.Fprintf(&b, "\nUSD: %s | Ounce: $%s\n", active.ExchangeRate.StringFixed(2), d.OunceUSD.String())

	ConditionalBlock(&b, func(w io.Writer) bool {
		if live == nil || !live.Valid() {
			return false
		}
		fmt.Fprintf(w, "\nAdvice: **%s** (live %s, manual %s)\n",
			goldbook.Advice(live.Gold24, s.GoldPrice24), m(live.Gold24), m(s.GoldPrice24))
		return true
	})

	fmt.Fprintf(&b, "\n## Position\n\n")
	fmt.Fprintln(&b, "| Item | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Net profit | %s |\n", m(d.Net))
	fmt.Fprintf(&b, "| Pure gold stock | %s g |\n", d.PureStock.StringFixed(2))
	fmt.Fprintf(&b, "| Stock value | %s |\n", m(d.StockValue))
	fmt.Fprintf(&b, "| Capital | %s |\n", m(d.Capital))
	fmt.Fprintf(&b, "| Liquidity | %s |\n", m(d.Liquidity))
	return b.String()
}

// ValuationMarkdown renders the purity calculator result.
func ValuationMarkdown(w goldbook.Amount, k goldbook.Karat, v goldbook.Valuation, s goldbook.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Weight | Karat | Pure weight | Value | Manual total |\n")
	fmt.Fprintf(&b, "|---:|:---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s g | %s | %s g | %s | %s |\n",
		w.StringFixed(2), k.Label(), v.PureWeight.StringFixed(3),
		s.Money(v.Value).Whole(), s.Money(v.ManualTotal).Whole())
	return b.String()
}
