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

// saveOrder builds the transaction of o at the prices in use and saves it.
func saveOrder(ctx context.Context, a *app, o goldbook.Order, show bool) subcommands.ExitStatus {
	stored, active, _, err := a.settings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err := o.Transaction(active.GoldPrice24)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx, err = a.store.Transactions().Add(ctx, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %s %s: %s %s\n", tx.Type, tx.ID, stored.Money(tx.TotalAmount).Whole(), stored.Currency)
	if show {
		printMarkdown(renderer.Transaction(tx, stored, a.store.Now()).Markdown())
	}
	return subcommands.ExitSuccess
}

// --- Buy and Sell Commands ---

type tradeCmd struct {
	typ   goldbook.TxType
	order goldbook.Order
	date  string
	karat int
	print bool
}

func (c *tradeCmd) Name() string {
	if c.typ == goldbook.Sell {
		return "sell"
	}
	return "buy"
}

func (c *tradeCmd) Synopsis() string {
	if c.typ == goldbook.Sell {
		return "sell gold to a customer"
	}
	return "buy gold from a customer"
}

func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`gbk %s -c <customer> -w <grams> [-k <karat>] [-p <price per gram>] [-discount <percent>] [-gold scrap|raw] [-d <date>] [-print]

  Records a %s. Without -p the price per gram is suggested from the 24 karat
  price in use: the karat share of it, plus 50 for a sale or minus 50 for a
  purchase, rounded. The total is weight × price less the discount percent.
`, c.Name(), c.typ)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	c.order.Type = c.typ
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.order.CustomerName, "c", "", "Customer name")
	f.Var(amountValue{&c.order.Weight}, "w", "Weight in grams")
	f.IntVar(&c.karat, "k", int(goldbook.K21), "Karat in parts per 1000 (1000, 875, 750)")
	f.Var(amountValue{&c.order.PricePerGram}, "p", "Price per gram, suggested when missing")
	f.Var(amountValue{&c.order.Discount}, "discount", "Discount percent")
	f.StringVar(&c.order.GoldType, "gold", goldbook.GoldScrap, "Gold type: scrap or raw")
	f.BoolVar(&c.print, "print", false, "Print the invoice once saved")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.order.Date = day
	c.order.Karat = goldbook.Karat(c.karat)
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		return saveOrder(ctx, a, c.order, c.print)
	})
}

// --- Analysis Command ---

type analysisCmd struct {
	order goldbook.Order
	date  string
	karat int
	print bool
}

func (*analysisCmd) Name() string     { return "analysis" }
func (*analysisCmd) Synopsis() string { return "record a paid gold assay" }
func (*analysisCmd) Usage() string {
	return `gbk analysis -c <customer> -w <grams> -k <karat> -fee <amount> [-cast cast|raw] [-tech <employee id>] [-d <date>] [-print]

  Records an assay. Its total is the analysis fee.
`
}

func (c *analysisCmd) SetFlags(f *flag.FlagSet) {
	c.order.Type = goldbook.Analysis
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.order.CustomerName, "c", "", "Customer name")
	f.Var(amountValue{&c.order.Weight}, "w", "Weight in grams")
	f.IntVar(&c.karat, "k", 0, "Measured karat in parts per 1000")
	f.Var(amountValue{&c.order.Fee}, "fee", "Analysis fee")
	f.StringVar(&c.order.CastType, "cast", goldbook.CastCast, "Sample type: cast or raw")
	f.StringVar(&c.order.TechnicianID, "tech", "", "Technician employee id")
	f.BoolVar(&c.print, "print", false, "Print the certificate once saved")
}

func (c *analysisCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.order.Date = day
	c.order.Karat = goldbook.Karat(c.karat)
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		return saveOrder(ctx, a, c.order, c.print)
	})
}

// --- Expense Command ---

type expenseCmd struct {
	order goldbook.Order
	date  string
	print bool
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record a shop expense (admin)" }
func (*expenseCmd) Usage() string {
	return `gbk -user <admin> -password <pw> expense -a <amount> -m <description> [-cat <category>] [-d <date>] [-print]

  Records an expense paid from the till.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	c.order.Type = goldbook.Expense
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.Var(amountValue{&c.order.Amount}, "a", "Amount paid")
	f.StringVar(&c.order.Description, "m", "", "Description")
	f.StringVar(&c.order.Category, "cat", goldbook.ExpenseCategories[len(goldbook.ExpenseCategories)-1], "Category")
	f.BoolVar(&c.print, "print", false, "Print the voucher once saved")
}

func (c *expenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.order.Date = day
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		return saveOrder(ctx, a, c.order, c.print)
	})
}
