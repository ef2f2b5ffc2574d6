package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/goldbook"
)

// ProfitMarkdown renders the profit statement.
func ProfitMarkdown(p goldbook.Profit, s goldbook.Settings) string {
	var b strings.Builder
	m := func(a goldbook.Amount) string { return s.Money(a).Whole() }

	fmt.Fprintf(&b, "# Profit\n\n")
	fmt.Fprintln(&b, "| Item | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Sales | %s |\n", m(p.Sales))
	fmt.Fprintf(&b, "| Purchases | %s |\n", m(p.Purchases))
	fmt.Fprintf(&b, "| **Gross profit** | **%s** |\n", m(p.Gross))
	fmt.Fprintf(&b, "| Analysis (%d) | %s |\n", p.AnalysisCount, m(p.Analysis))
	fmt.Fprintf(&b, "| Expenses | %s |\n", m(p.Expenses))
	fmt.Fprintf(&b, "| **Operating profit** | **%s** |\n", m(p.Operating))
	fmt.Fprintf(&b, "| Income tax %s%% | %s |\n", goldbook.IncomeTaxRate, m(p.IncomeTax))
	fmt.Fprintf(&b, "| VAT %s%% | %s |\n", goldbook.VATRate, m(p.VAT))
	fmt.Fprintf(&b, "| **Net profit** | **%s %s** |\n", m(p.Net), s.Currency)
	return b.String()
}

// PartnersMarkdown renders the split of net among partners.
func PartnersMarkdown(shares []goldbook.Share, capital, net goldbook.Amount, s goldbook.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Partners\n\n")
	if len(shares) == 0 {
		fmt.Fprintln(&b, "No partners.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Partner | Capital | Share | Profit |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, sh := range shares {
		fmt.Fprintf(&b, "| %s | %s | %s%% | %s |\n",
			cell(sh.Partner.Name),
			s.Money(sh.Partner.Capital).Whole(),
			sh.Percent.StringFixed(2),
			s.Money(sh.Profit).Whole(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | | **%s** |\n", s.Money(capital).Whole(), s.Money(net).Whole())
	return b.String()
}
