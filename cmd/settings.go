package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goldbook"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	source   string
	gold24   goldbook.Amount
	gold21   goldbook.Amount
	gold18   goldbook.Amount
	rate     goldbook.Amount
	tax      goldbook.Amount
	currency string
	company  string
	address  string
	phone    string
	taxNo    string
	register string
	color    string
	footer   string
	paper    string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the shop settings" }
func (*settingsCmd) Usage() string {
	return `gbk settings [-source MANUAL|LIVE] [-gold24 <p>] [-gold21 <p>] [-gold18 <p>] [-rate <usd>] ...

  Without flags, prints the settings as JSON. Otherwise sets the given
  values and saves the settings. -gold24 alone also derives the 21 and 18
  karat prices.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Price source: MANUAL or LIVE")
	f.Var(amountValue{&c.gold24}, "gold24", "Manual 24 karat gram price")
	f.Var(amountValue{&c.gold21}, "gold21", "Manual 21 karat gram price")
	f.Var(amountValue{&c.gold18}, "gold18", "Manual 18 karat gram price")
	f.Var(amountValue{&c.rate}, "rate", "Manual USD exchange rate")
	f.Var(amountValue{&c.tax}, "tax", "Tax rate in percent")
	f.StringVar(&c.currency, "currency", "", "Local currency code")
	f.StringVar(&c.company, "company", "", "Company name printed on documents")
	f.StringVar(&c.address, "address", "", "Company address")
	f.StringVar(&c.phone, "phone", "", "Contact number")
	f.StringVar(&c.taxNo, "taxno", "", "Tax number")
	f.StringVar(&c.register, "cr", "", "Commercial register")
	f.StringVar(&c.color, "color", "", "Primary color of documents, like #d4af37")
	f.StringVar(&c.footer, "footer", "", "Footer text of documents")
	f.StringVar(&c.paper, "paper", "", "Paper size: A4, A5, RECEIPT or 1015")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		s, err := a.store.Settings().Load(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		if len(set) == 0 {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Println(string(data))
			return subcommands.ExitSuccess
		}
		if err := c.apply(&s, set); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := a.store.Settings().Save(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Settings saved")
		return subcommands.ExitSuccess
	})
}

// apply copies the flags that were set into s.
func (c *settingsCmd) apply(s *goldbook.Settings, set map[string]bool) error {
	if set["source"] {
		src := goldbook.PriceSource(strings.ToUpper(c.source))
		if src != goldbook.Manual && src != goldbook.Live {
			return fmt.Errorf("unknown price source %q", c.source)
		}
		s.PriceSource = src
	}
	if set["gold24"] {
		s.GoldPrice24 = c.gold24
		if !set["gold21"] && !set["gold18"] {
			s.GoldPrice21 = c.gold24.Mul(goldbook.K21.Purity()).Floor()
			s.GoldPrice18 = c.gold24.Mul(goldbook.K18.Purity()).Floor()
		}
	}
	amounts := map[string]struct {
		dst *goldbook.Amount
		v   goldbook.Amount
	}{
		"gold21": {&s.GoldPrice21, c.gold21},
		"gold18": {&s.GoldPrice18, c.gold18},
		"rate":   {&s.ExchangeRate, c.rate},
		"tax":    {&s.TaxRate, c.tax},
	}
	for name, a := range amounts {
		if set[name] {
			*a.dst = a.v
		}
	}
	texts := map[string]struct {
		dst *string
		v   string
	}{
		"currency": {&s.Currency, strings.ToUpper(c.currency)},
		"company":  {&s.Print.CompanyName, c.company},
		"address":  {&s.Print.CompanyAddress, c.address},
		"phone":    {&s.Print.ContactNumber, c.phone},
		"taxno":    {&s.Print.TaxNumber, c.taxNo},
		"cr":       {&s.Print.CommercialRegister, c.register},
		"color":    {&s.Print.PrimaryColor, c.color},
		"footer":   {&s.Print.FooterText, c.footer},
	}
	for name, t := range texts {
		if set[name] {
			*t.dst = t.v
		}
	}
	if set["paper"] {
		s.Print.PaperSize = goldbook.PaperSize(strings.ToUpper(c.paper))
	}
	return nil
}

// --- Clear Command ---

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every transaction" }
func (*clearCmd) Usage() string {
	return `gbk clear -yes

  Deletes every transaction. Take a backup first.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the deletion")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: nothing cleared, confirm with -yes")
		return subcommands.ExitUsageError
	}
	return run(ctx, true, func(a *app) subcommands.ExitStatus {
		if err := a.store.Transactions().Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("All transactions deleted")
		return subcommands.ExitSuccess
	})
}
