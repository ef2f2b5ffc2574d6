package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/etnz/goldbook/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	typ    string
	period string
	start  string
	date   string
	csv    bool
	out    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "report the transactions of a type over a period" }
func (*reportCmd) Usage() string {
	return `gbk report [-t <type>] [-p <period> | -s <start_date>] [-d <end_date>] [-csv [-o <file>]]

  Lists the matching transactions and their total. With -csv the report is
  exported as a UTF-8 CSV file that spreadsheets open with Arabic text intact.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "ALL", "Transaction type: ALL, BUY, SELL, ANALYSIS or EXPENSE")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, year) ending on -d")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range")
	f.BoolVar(&c.csv, "csv", false, "Export the report as CSV")
	f.StringVar(&c.out, "o", "", "With -csv, the output file. Defaults to the report file name.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := parseFilter(c.typ, c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		txs, err := a.store.Transactions().List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		r := goldbook.NewReport(txs, filter)
		if !c.csv {
			s, err := a.store.Settings().Load(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
				return subcommands.ExitFailure
			}
			printMarkdown(transactionsMarkdown(r.Transactions, s))
			return subcommands.ExitSuccess
		}
		if len(r.Transactions) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no data to export")
			return subcommands.ExitFailure
		}
		if err := writeReportCSV(r, c.out, date.New(a.store.Now().Date())); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

func writeReportCSV(r *goldbook.Report, out string, on date.Date) (err error) {
	if out == "" {
		out = r.FileName(on)
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	header, rows := r.Table()
	if err := goldbook.WriteCSV(file, header, rows); err != nil {
		return fmt.Errorf("writing %q: %w", out, err)
	}
	fmt.Printf("Exported %d transactions to %s\n", len(rows), out)
	return nil
}

// --- Profit Command ---

type profitCmd struct{}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "show the net profit and the partners shares" }
func (*profitCmd) Usage() string {
	return `gbk profit

  Shows the gross profit over all transactions, the income tax and VAT due,
  the net profit and how it is shared between partners by capital.
`
}

func (*profitCmd) SetFlags(f *flag.FlagSet) {}

func (*profitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		txs, err := a.store.Transactions().List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		partners, err := a.store.Partners().List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading partners: %v\n", err)
			return subcommands.ExitFailure
		}
		s, err := a.store.Settings().Load(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		p := goldbook.ComputeProfit(txs)
		shares, capital := goldbook.PartnerShares(partners, p.Net)
		printMarkdown(renderer.ProfitMarkdown(p, s) + "\n" + renderer.PartnersMarkdown(shares, capital, p.Net, s))
		return subcommands.ExitSuccess
	})
}
