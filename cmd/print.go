package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/renderer"
	"github.com/google/subcommands"
)

type printCmd struct {
	id     string
	report bool
	typ    string
	period string
	html   bool
	out    string
}

func (*printCmd) Name() string     { return "print" }
func (*printCmd) Synopsis() string { return "print an invoice, a voucher, a gate pass or a report" }
func (*printCmd) Usage() string {
	return `gbk print -id <id> [-html [-o <file>]]
gbk print -report [-t <type>] [-p <period>] [-html [-o <file>]]

  Renders a printable document. Ids starting with "P-" are gate passes. With
  -html the document is written as a page sized for the paper set in the
  print settings, ready to be printed from a browser.
`
}

func (c *printCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction or permission id")
	f.BoolVar(&c.report, "report", false, "Print a report instead of a single record")
	f.StringVar(&c.typ, "t", "ALL", "With -report, the transaction type")
	f.StringVar(&c.period, "p", "", "With -report, a period (day, week, month, year) ending today")
	f.BoolVar(&c.html, "html", false, "Write an HTML page instead of printing to the terminal")
	f.StringVar(&c.out, "o", "", "With -html, the output file. Defaults to the document file name.")
}

func (c *printCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" && !c.report {
		f.Usage()
		return subcommands.ExitUsageError
	}
	// gate passes and reports are admin only
	admin := c.report || strings.HasPrefix(c.id, goldbook.IDPrefix(goldbook.PermissionKind)+"-")
	return run(ctx, admin, func(a *app) subcommands.ExitStatus {
		d, err := c.document(ctx, a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if !c.html {
			printMarkdown(d.Markdown())
			return subcommands.ExitSuccess
		}
		page, err := d.HTML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", d.Kind, err)
			return subcommands.ExitFailure
		}
		out := c.out
		if out == "" {
			out = d.FileName("html")
		}
		if err := os.WriteFile(out, []byte(page), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %s\n", out)
		return subcommands.ExitSuccess
	})
}

func (c *printCmd) document(ctx context.Context, a *app) (*renderer.Document, error) {
	s, err := a.store.Settings().Load(ctx)
	if err != nil {
		return nil, err
	}
	now := a.store.Now()
	if c.report {
		filter, err := parseFilter(c.typ, c.period, "", "")
		if err != nil {
			return nil, err
		}
		txs, err := a.store.Transactions().List(ctx)
		if err != nil {
			return nil, err
		}
		r := goldbook.NewReport(txs, filter)
		if len(r.Transactions) == 0 {
			return nil, goldbook.ErrNoData
		}
		return renderer.Report(r, s, now), nil
	}

	if p, err := a.store.Permissions().Get(ctx, c.id); err == nil {
		return renderer.Permission(p, s, now), nil
	} else if !errors.Is(err, goldbook.ErrNotFound) {
		return nil, err
	}
	tx, err := a.store.Transactions().Get(ctx, c.id)
	if err != nil {
		return nil, err
	}
	d := renderer.Transaction(tx, s, now)
	if *userFlag != "" {
		d.User = *userFlag
	}
	return d, nil
}
