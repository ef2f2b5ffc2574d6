package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/price"
	"github.com/etnz/goldbook/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct {
	live bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show the gold prices in use and the shop position" }
func (*pricesCmd) Usage() string {
	return `gbk prices [-live]

  Shows the 24, 21 and 18 karat gram prices in use. With a LIVE price source
  they are resolved from GoldAPI.io, then Gold-Price-Today.com, then the
  global ounce price; the manual prices are used when every source fails.
  -live resolves the market price even with a MANUAL price source, to compare.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.live, "live", false, "Resolve the market price even when the price source is MANUAL")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		stored, active, live, err := a.settings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		if live == nil && c.live {
			md, err := a.resolver().Resolve(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error resolving the market price: %v\n", err)
				return subcommands.ExitFailure
			}
			live = &md
		}
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
		d := goldbook.NewDashboard(txs, partners, active)
		printMarkdown(renderer.DashboardMarkdown(d, live, stored))
		return subcommands.ExitSuccess
	})
}

// --- Watch Command ---

type watchCmd struct {
	schedule string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow the live gold price" }
func (*watchCmd) Usage() string {
	return `gbk watch [-every <schedule>]

  Resolves the market price on a schedule and prints every new price until
  interrupted. Nothing is resolved while the price source is MANUAL.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "every", "", "Cron schedule, defaults to the configured watch.schedule")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		w := newWatcher(a)
		updates, cancel := w.Subscribe()
		defer cancel()

		schedule := c.schedule
		if schedule == "" {
			schedule = a.cfg.Watch.Schedule
		}
		if err := w.Start(schedule); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", schedule, err)
			return subcommands.ExitUsageError
		}
		defer w.Stop()

		if _, err := w.Refresh(ctx); err != nil {
			log.WithError(err).Warn("first refresh failed")
		}
		for {
			select {
			case <-ctx.Done():
				return subcommands.ExitSuccess
			case md := <-updates:
				fmt.Println(priceLine(md))
			}
		}
	})
}

// newWatcher returns a watcher resolving only while the price source is LIVE.
func newWatcher(a *app) *price.Watcher {
	enabled := func(ctx context.Context) bool {
		s, err := a.store.Settings().Load(ctx)
		return err == nil && s.PriceSource == goldbook.Live
	}
	return price.NewWatcher(a.resolver(), enabled, log)
}

func priceLine(md goldbook.MarketData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "24K %s  21K %s  18K %s", md.Gold24, md.Gold21, md.Gold18)
	fmt.Fprintf(&b, "  USD %s  ounce $%s  (%s)", md.USD.StringFixed(2), md.OuncePriceUSD, md.Source)
	return b.String()
}

// --- Calc Command ---

type calcCmd struct {
	weight goldbook.Amount
	karat  int
	price  goldbook.Amount
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute the pure gold content and value of a piece" }
func (*calcCmd) Usage() string {
	return `gbk calc -w <grams> -k <karat> [-p <price per gram>]

  Computes the pure weight (weight × karat / 1000), its value at the 24
  karat price in use, and the total at a manual gram price.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.Var(amountValue{&c.weight}, "w", "Weight in grams")
	f.IntVar(&c.karat, "k", int(goldbook.K21), "Karat in parts per 1000")
	f.Var(amountValue{&c.price}, "p", "Manual price per gram")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	k := goldbook.Karat(c.karat)
	if !k.Valid() || !c.weight.IsPositive() {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		stored, active, _, err := a.settings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		v := goldbook.Valuate(c.weight, k, active.GoldPrice24, c.price)
		printMarkdown(renderer.ValuationMarkdown(c.weight, k, v, stored))
		return subcommands.ExitSuccess
	})
}
