package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
)

var at = time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)

// TestTemplatesParse checks every embedded template is valid.
func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "templates/*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no templates embedded")
	}
	for _, f := range files {
		content, err := fs.ReadFile(templates, f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := template.New(f).Funcs(funcs).Parse(string(content)); err != nil {
			t.Errorf("template %s: %v", f, err)
		}
	}
}

func contains(t *testing.T, name, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("%s: missing %q in:\n%s", name, w, got)
		}
	}
}

func TestTransaction(t *testing.T) {
	s := goldbook.DefaultSettings()
	on := date.New(2025, 5, 4)

	buy := goldbook.NewTrade(goldbook.Buy, on, "Ahmed", goldbook.A(10), goldbook.K21, goldbook.A(3500), goldbook.A(0), "")
	buy.ID = "G-1000"
	sell := goldbook.NewTrade(goldbook.Sell, on, "", goldbook.A(5), goldbook.K18, goldbook.A(2400), goldbook.A(0), goldbook.GoldRaw)
	sell.ID = "G-1001"
	analysis := goldbook.NewAnalysis(on, "Omar", goldbook.A(12), goldbook.K21, goldbook.A(150), goldbook.CastRaw, "")
	analysis.ID = "G-1002"
	expense := goldbook.NewExpense(on, goldbook.A(1200), "Electricity bill", "كهرباء")
	expense.ID = "G-1003"

	tests := []struct {
		name    string
		tx      goldbook.Transaction
		columns int
		want    []string
	}{
		{"buy", buy, 5, []string{"PURCHASE INVOICE", "فاتورة شراء ذهب", "G-1000", "2025-05-04", "Ahmed", "شراء ذهب كسر (Scrap Gold)", "| 10.00 |", "| 875 |", "35,000 EGP"}},
		{"sell", sell, 5, []string{"TAX SALES INVOICE", "عميل نقدي", "بيع ذهب خام (Raw Gold)", "12,000 EGP"}},
		{"analysis", analysis, 4, []string{"ASSAY CERTIFICATE", "خدمة فحص وتحليل فني - النوع: raw", "150 EGP"}},
		{"expense", expense, 4, []string{"PAYMENT VOUCHER", "Electricity bill", "| - |", "1,200 EGP"}},
	}
	for _, tt := range tests {
		d := Transaction(tt.tx, s, at)
		if len(d.Columns) != tt.columns {
			t.Errorf("%s: %d columns, want %d", tt.name, len(d.Columns), tt.columns)
		}
		md := d.Markdown()
		contains(t, tt.name, md, tt.want...)
		contains(t, tt.name, md, s.Print.CompanyName, s.Print.FooterText, "System Generated by Pyramids Gold v2.0 | 2025-05-04T10:30:00Z")
	}
}

func TestPermission(t *testing.T) {
	p := goldbook.Permission{
		ID:           "P-1000",
		EmployeeName: "Karim",
		Date:         date.New(2025, 5, 4),
		Destination:  "Branch | 2",
		Items:        "2 safes\n1 scale",
		Status:       goldbook.Pending,
	}
	d := Permission(p, goldbook.DefaultSettings(), at)
	md := d.Markdown()
	contains(t, "permission", md, "SECURITY GATE PASS", "| Security |", "Karim", `Branch \| 2`, "```\n2 safes\n1 scale\n```")
	if strings.Contains(md, "الإجمالي النهائي") {
		t.Errorf("gate pass should not carry totals:\n%s", md)
	}
	if got, want := d.FileName("html"), "PyramidsGold_PERMISSION_P-1000.html"; got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	on := date.New(2025, 5, 4)
	txs := []goldbook.Transaction{
		goldbook.NewTrade(goldbook.Sell, on, "A", goldbook.A(2), goldbook.K21, goldbook.A(3000), goldbook.A(0), ""),
		goldbook.NewTrade(goldbook.Buy, on, "B", goldbook.A(1), goldbook.K21, goldbook.A(2900), goldbook.A(0), ""),
		goldbook.NewAnalysis(on, "C", goldbook.A(3), goldbook.K18, goldbook.A(100), "", ""),
	}
	r := goldbook.NewReport(txs, goldbook.ReportFilter{})
	d := Report(r, goldbook.DefaultSettings(), at)
	if len(d.Rows) != 3 {
		t.Fatalf("%d rows, want 3", len(d.Rows))
	}
	if got := d.Rows[2][1]; got != "C" {
		t.Errorf("analysis row label = %q, want customer name", got)
	}
	contains(t, "report", d.Markdown(), "GENERAL REPORT", "| 1 | بيع |", "| 2 | شراء |", "9,000 EGP")
}

func TestHTML(t *testing.T) {
	s := goldbook.DefaultSettings()
	tx := goldbook.NewExpense(date.New(2025, 5, 4), goldbook.A(50), "tea", "ضيافة")
	tx.ID = "G-1004"
	html, err := Transaction(tx, s, at).HTML()
	if err != nil {
		t.Fatal(err)
	}
	contains(t, "html", html, `dir="rtl"`, "size: A5", "<table>", "<title>PAYMENT VOUCHER_G-1004</title>", "#7f1d1d")

	tests := []struct {
		paper goldbook.PaperSize
		want  string
	}{
		{"", "size: A5"},
		{goldbook.A4, "size: A4"},
		{goldbook.Receipt, "size: 80mm auto"},
		{goldbook.Paper1015, "size: 100mm 150mm"},
		{"LETTER", "size: A4"},
	}
	for _, tt := range tests {
		if got := PageCSS(tt.paper); !strings.Contains(got, tt.want) {
			t.Errorf("PageCSS(%q) = %q, want %q", tt.paper, got, tt.want)
		}
	}
}

func TestProfitMarkdown(t *testing.T) {
	on := date.New(2025, 5, 4)
	txs := []goldbook.Transaction{
		goldbook.NewTrade(goldbook.Sell, on, "A", goldbook.A(10), goldbook.K21, goldbook.A(3000), goldbook.A(0), ""),
		goldbook.NewTrade(goldbook.Buy, on, "B", goldbook.A(10), goldbook.K21, goldbook.A(2900), goldbook.A(0), ""),
	}
	p := goldbook.ComputeProfit(txs)
	md := ProfitMarkdown(p, goldbook.DefaultSettings())
	// operating 1000, income tax 230, vat 140, net 630
	contains(t, "profit", md, "| Sales | 30,000 |", "| Income tax 23% | 230 |", "| VAT 14% | 140 |", "| **Net profit** | **630 EGP** |")

	shares, capital := goldbook.PartnerShares([]goldbook.Partner{
		{ID: "1", Name: "Ali", Capital: goldbook.A(75000)},
		{ID: "2", Name: "Mona", Capital: goldbook.A(25000)},
	}, p.Net)
	md = PartnersMarkdown(shares, capital, p.Net, goldbook.DefaultSettings())
	contains(t, "partners", md, "| Ali | 75,000 | 75.00% | 472 |", "| Mona | 25,000 | 25.00% | 157 |")
}

func TestDashboardMarkdown(t *testing.T) {
	s := goldbook.DefaultSettings()
	live := &goldbook.MarketData{
		Gold24: goldbook.A(4018), Gold21: goldbook.A(3515), Gold18: goldbook.A(3013),
		USD: goldbook.A(50), OuncePriceUSD: goldbook.A(2500), Source: "Global Market (Calc)",
	}
	d := goldbook.NewDashboard(nil, nil, s.Active(live))
	md := DashboardMarkdown(d, live, s)
	contains(t, "live", md, "Gold prices (Global Market (Calc))", "| 24K | 4,018 |", "Advice: **SELL**")

	s.PriceSource = goldbook.Manual
	md = DashboardMarkdown(d, nil, s)
	contains(t, "manual", md, "Gold prices (manual)", "| 24K | 3,100 |")
	if strings.Contains(md, "Advice") {
		t.Errorf("no advice without a live price:\n%s", md)
	}
}
