// Package cmd implements the gbk command line application to keep the books
// of a gold shop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/config"
	"github.com/etnz/goldbook/logging"
	"github.com/etnz/goldbook/notify"
	"github.com/etnz/goldbook/price"
	"github.com/etnz/goldbook/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the goldbook.yaml config file. Defaults to ./goldbook.yaml when present.")
	envFile    = flag.String("env", ".env", "Path to a .env file loaded before the config")
	storeFlag  = flag.String("store", "", "Store location: a folder, sqlite:<file>, postgres://..., redis://... or mem:. Overrides the config.")
	userFlag   = flag.String("user", os.Getenv("GOLDBOOK_USER"), "User name, required by admin only commands")
	passFlag   = flag.String("password", os.Getenv("GOLDBOOK_PASSWORD"), "Password of -user")
	Verbose    = flag.Bool("v", false, "Verbose logging")
)

// log is the command logger, configured by loadConfig.
var log logrus.FieldLogger = logrus.StandardLogger()

// errAdminOnly is returned by admin only commands run by a limited user.
var errAdminOnly = errors.New("this command is reserved to admin users")

// httpClient is used for every outgoing call.
var httpClient = http.DefaultClient

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return nil, err
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	l, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	log = l
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	return cfg, nil
}

// app is what a command works with: the configuration and the opened store.
type app struct {
	cfg    *config.Config
	store  *store.Store
	mailer *notify.Mailer
}

// openApp loads the configuration and opens the store. Close it when done.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	mailer := notify.New(cfg.Mail, log)
	s, err := store.Open(cfg.Store, store.WithLogger(log), store.WithNotifier(mailer))
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", cfg.Store, err)
	}
	return &app{cfg: cfg, store: s, mailer: mailer}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.WithError(err).Warn("cannot close store")
	}
}

// run opens the app, checks the user is an admin when admin is set, and
// runs fn.
func run(ctx context.Context, admin bool, fn func(a *app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	if admin {
		if err := a.requireAdmin(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return fn(a)
}

// login checks -user and -password.
func (a *app) login(ctx context.Context) (goldbook.User, error) {
	if *userFlag == "" {
		return goldbook.User{}, fmt.Errorf("%w: use -user and -password", goldbook.ErrInvalidCredentials)
	}
	return a.store.Users().Login(ctx, *userFlag, *passFlag)
}

// requireAdmin fails unless -user is an admin.
func (a *app) requireAdmin(ctx context.Context) error {
	u, err := a.login(ctx)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return errAdminOnly
	}
	return nil
}

func (a *app) resolver() *price.Resolver {
	return price.NewResolver(a.cfg.Price, httpClient, log)
}

// settings returns the stored settings and the ones in use. With a LIVE
// price source the market price is resolved; when that fails the manual
// prices are used and live is nil.
func (a *app) settings(ctx context.Context) (stored, active goldbook.Settings, live *goldbook.MarketData, err error) {
	stored, err = a.store.Settings().Load(ctx)
	if err != nil {
		return
	}
	active = stored
	if stored.PriceSource != goldbook.Live {
		return
	}
	md, rerr := a.resolver().Resolve(ctx)
	if rerr != nil {
		log.WithError(rerr).Warn("using manual prices")
		return
	}
	live = &md
	active = stored.Active(live)
	return
}

// printMarkdown renders md for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
