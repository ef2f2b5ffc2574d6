package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/goldbook/api"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the REST API for the shop front end" }
func (*serveCmd) Usage() string {
	return `gbk serve [-addr <host:port>]

  Serves the REST API under /api, authenticated with HTTP Basic auth against
  the users. While the price source is LIVE the market price is refreshed on
  the watch.schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, defaults to the configured server.addr")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, false, func(a *app) subcommands.ExitStatus {
		w := newWatcher(a)
		if err := w.Start(a.cfg.Watch.Schedule); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid watch.schedule %q: %v\n", a.cfg.Watch.Schedule, err)
			return subcommands.ExitFailure
		}
		defer w.Stop()

		addr := c.addr
		if addr == "" {
			addr = a.cfg.Server.Addr
		}
		srv := api.New(a.store, w, log)
		errc := make(chan error, 1)
		go func() { errc <- srv.Start(addr) }()

		select {
		case err := <-errc:
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		case <-ctx.Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdown); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		return subcommands.ExitSuccess
	})
}
