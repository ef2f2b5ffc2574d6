package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/etnz/goldbook/store"
	"github.com/google/subcommands"
)

// setFlag sets a global flag for the duration of the test.
func setFlag(t *testing.T, p *string, v string) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// newShop points the global flags to an empty shop in a temporary folder,
// logged in as the seeded admin.
func newShop(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	setFlag(t, configFile, "")
	setFlag(t, envFile, filepath.Join(dir, ".env"))
	setFlag(t, storeFlag, filepath.Join(dir, "data"))
	setFlag(t, userFlag, "admin")
	setFlag(t, passFlag, "admin")
	return dir
}

func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func openShop(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(*storeFlag)
	if err != nil {
		t.Fatalf("store.Open(%q): %v", *storeFlag, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestShopDay(t *testing.T) {
	dir := newShop(t)
	ctx := context.Background()

	if got := execute(t, &settingsCmd{}, "-source", "manual", "-gold24", "3200"); got != subcommands.ExitSuccess {
		t.Fatalf("settings = %v, want success", got)
	}
	if got := execute(t, &tradeCmd{typ: goldbook.Buy}, "-c", "Ali", "-w", "10", "-k", "875"); got != subcommands.ExitSuccess {
		t.Fatalf("buy = %v, want success", got)
	}

	s := openShop(t)
	settings, err := s.Settings().Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if settings.PriceSource != goldbook.Manual || !settings.GoldPrice21.Equal(goldbook.A(2800)) {
		t.Errorf("settings = %s %s, want MANUAL 2800", settings.PriceSource, settings.GoldPrice21)
	}
	txs, err := s.Transactions().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].ID != "B-1001" || !txs[0].TotalAmount.Equal(goldbook.A(27500)) {
		t.Errorf("buy saved as %s %s, want B-1001 27500", txs[0].ID, txs[0].TotalAmount)
	}
	s.Close()

	csvFile := filepath.Join(dir, "report.csv")
	if got := execute(t, &reportCmd{}, "-t", "buy", "-csv", "-o", csvFile); got != subcommands.ExitSuccess {
		t.Fatalf("report = %v, want success", got)
	}
	data, err := os.ReadFile(csvFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\uFEFFType,Date,Party") || !strings.Contains(string(data), "Ali") {
		t.Errorf("report csv = %q", data)
	}

	if got := execute(t, &backupCmd{}, "-dir", dir); got != subcommands.ExitSuccess {
		t.Fatalf("backup = %v, want success", got)
	}
	backup := filepath.Join(dir, store.BackupFileName(date.Today()))
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup file: %v", err)
	}

	if got := execute(t, &clearCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("clear without -yes = %v, want usage error", got)
	}
	if got := execute(t, &clearCmd{}, "-yes"); got != subcommands.ExitSuccess {
		t.Fatalf("clear = %v, want success", got)
	}
	if got := execute(t, &restoreCmd{}, backup); got != subcommands.ExitSuccess {
		t.Fatalf("restore = %v, want success", got)
	}
	txs, err = openShop(t).Transactions().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 || txs[0].ID != "B-1001" {
		t.Errorf("restored %v, want B-1001", txs)
	}
}

func TestLimitedUser(t *testing.T) {
	newShop(t)
	if got := execute(t, &usersCmd{}, "-name", "clerk", "-pass", "secret", "add"); got != subcommands.ExitSuccess {
		t.Fatalf("users add = %v, want success", got)
	}
	setFlag(t, userFlag, "clerk")
	setFlag(t, passFlag, "secret")

	if got := execute(t, &loginCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("login = %v, want success", got)
	}
	if got := execute(t, &profitCmd{}); got != subcommands.ExitFailure {
		t.Errorf("profit as a limited user = %v, want failure", got)
	}
	setFlag(t, passFlag, "wrong")
	if got := execute(t, &loginCmd{}); got != subcommands.ExitFailure {
		t.Errorf("login with a wrong password = %v, want failure", got)
	}
}

func TestPermissionsCommand(t *testing.T) {
	newShop(t)
	ctx := context.Background()
	s := openShop(t)
	e, err := s.Employees().Add(ctx, goldbook.Employee{Name: "Omar", Code: "E1"})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if got := execute(t, &permissionsCmd{}, "-employee", e.ID, "-to", "Workshop", "-items", "2 rings", "add"); got != subcommands.ExitSuccess {
		t.Fatalf("permissions add = %v, want success", got)
	}
	if got := execute(t, &permissionsCmd{}, "toggle", "P-1001"); got != subcommands.ExitSuccess {
		t.Fatalf("permissions toggle = %v, want success", got)
	}
	if got := execute(t, &permissionsCmd{}, "toggle"); got != subcommands.ExitUsageError {
		t.Errorf("permissions toggle without id = %v, want usage error", got)
	}
	p, err := openShop(t).Permissions().Get(ctx, "P-1001")
	if err != nil {
		t.Fatal(err)
	}
	if p.EmployeeName != "Omar" || p.Status != goldbook.Completed {
		t.Errorf("permission = %+v, want Omar COMPLETED", p)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		typ, period, start, end string
		want                    goldbook.ReportFilter
		wantErr                 bool
	}{
		{typ: "ALL", want: goldbook.ReportFilter{}},
		{typ: "sell", want: goldbook.ReportFilter{Type: goldbook.Sell}},
		{typ: "gift", wantErr: true},
		{typ: "ALL", start: "2025-01-10", end: "2025-01-20", want: goldbook.ReportFilter{Span: date.Range{From: date.New(2025, 1, 10), To: date.New(2025, 1, 20)}}},
		{typ: "ALL", period: "month", end: "2025-02-14", want: goldbook.ReportFilter{Span: date.NewRange(date.New(2025, 2, 14), date.Monthly)}},
		{typ: "ALL", end: "2025-02-14", want: goldbook.ReportFilter{Span: date.Range{To: date.New(2025, 2, 14)}}},
		{typ: "ALL", period: "decade", end: "2025-02-14", wantErr: true},
		{typ: "ALL", start: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseFilter(tt.typ, tt.period, tt.start, tt.end)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFilter(%q, %q, %q, %q) error = %v, wantErr %v", tt.typ, tt.period, tt.start, tt.end, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseFilter(%q, %q, %q, %q) = %+v, want %+v", tt.typ, tt.period, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSettingsApply(t *testing.T) {
	c := &settingsCmd{source: "live", gold24: goldbook.A(4000), company: "Nile Gold", paper: "receipt"}
	s := goldbook.DefaultSettings()
	if err := c.apply(&s, map[string]bool{"source": true, "gold24": true, "company": true, "paper": true}); err != nil {
		t.Fatal(err)
	}
	if s.PriceSource != goldbook.Live || s.Print.CompanyName != "Nile Gold" || s.Print.PaperSize != goldbook.Receipt {
		t.Errorf("apply = %s %q %s", s.PriceSource, s.Print.CompanyName, s.Print.PaperSize)
	}
	if !s.GoldPrice21.Equal(goldbook.A(3500)) || !s.GoldPrice18.Equal(goldbook.A(3000)) {
		t.Errorf("derived prices = %s %s, want 3500 3000", s.GoldPrice21, s.GoldPrice18)
	}

	c = &settingsCmd{source: "auto"}
	if err := c.apply(&s, map[string]bool{"source": true}); err == nil {
		t.Error("apply accepted an unknown price source")
	}
}

func TestCompletion(t *testing.T) {
	root := Completion(flag.NewFlagSet("gbk", flag.ContinueOnError))
	for _, c := range Commands {
		if _, ok := root.Sub[c.Name()]; !ok {
			t.Errorf("no completion for %q", c.Name())
		}
	}
	buy := root.Sub["buy"]
	if _, ok := buy.Flags["k"]; !ok {
		t.Error("buy has no -k completion")
	}
	if root.Sub["permissions"].Args == nil {
		t.Error("permissions has no argument completion")
	}
}
