package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/google/subcommands"
)

type txCmd struct {
	typ    string
	period string
	start  string
	date   string
	head   int
	id     string
	json   string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions, newest first" }
func (*txCmd) Usage() string {
	return `gbk tx [-t <type>] [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>]
gbk tx -id <id> [-json <file>]

  Lists the transactions, with options for filtering and limiting the output.
  With -id, shows a single transaction; -json saves it as an indented JSON
  record.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "ALL", "Transaction type: ALL, BUY, SELL, ANALYSIS or EXPENSE")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, year) ending on -d")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions")
	f.StringVar(&c.id, "id", "", "Show the transaction with this id")
	f.StringVar(&c.json, "json", "", "With -id, save the record to this JSON file")
}

// parseFilter builds a report filter from the common type and range flags.
func parseFilter(typ, period, start, end string) (goldbook.ReportFilter, error) {
	var f goldbook.ReportFilter
	if typ != "" && typ != "ALL" {
		t, err := goldbook.ParseTxType(strings.ToUpper(typ))
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	if period == "" && start == "" && end == "" {
		return f, nil
	}
	on := date.Today()
	if end != "" {
		d, err := date.Parse(end)
		if err != nil {
			return f, fmt.Errorf("end date: %w", err)
		}
		on = d
	}
	switch {
	case start != "":
		from, err := date.Parse(start)
		if err != nil {
			return f, fmt.Errorf("start date: %w", err)
		}
		f.Span = date.Range{From: from, To: on}
	case period != "":
		p, err := date.ParsePeriod(period)
		if err != nil {
			return f, err
		}
		f.Span = date.NewRange(on, p)
	default:
		f.Span = date.Range{To: on}
	}
	return f, nil
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := parseFilter(c.typ, c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		if c.id != "" {
			return c.show(ctx, a)
		}
		txs, err := a.store.Transactions().List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		r := goldbook.NewReport(txs, filter)
		if c.head > 0 && len(r.Transactions) > c.head {
			r.Transactions = r.Transactions[:c.head]
		}
		s, err := a.store.Settings().Load(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(transactionsMarkdown(r.Transactions, s))
		return subcommands.ExitSuccess
	})
}

func (c *txCmd) show(ctx context.Context, a *app) subcommands.ExitStatus {
	tx, err := a.store.Transactions().Get(ctx, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json == "" {
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.json, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.json, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %s to %s\n", tx.ID, c.json)
	return subcommands.ExitSuccess
}

// transactionsMarkdown renders a transaction list as a table.
func transactionsMarkdown(txs []goldbook.Transaction, s goldbook.Settings) string {
	var b strings.Builder
	if len(txs) == 0 {
		return "No transactions.\n"
	}
	fmt.Fprintln(&b, "| ID | Type | Date | Party | Weight | Karat | Total |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|")
	total := goldbook.Amount{}
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.ID, tx.Type, tx.Date, strings.ReplaceAll(tx.Party(), "|", `\|`),
			tx.Weight.StringFixed(2), tx.Karat.Label(), s.Money(tx.TotalAmount).Whole())
		total = total.Add(tx.TotalAmount)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", s.Money(total).Whole())
	return b.String()
}
