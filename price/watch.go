package price

import (
	"context"
	"errors"
	"sync"

	"github.com/etnz/goldbook"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule refreshes the live price every minute.
const DefaultSchedule = "@every 1m"

// ErrPaused is returned by Refresh while live prices are disabled.
var ErrPaused = errors.New("live prices are disabled")

// PriceResolver resolves the current market data.
type PriceResolver interface {
	Resolve(ctx context.Context) (goldbook.MarketData, error)
}

// Watcher keeps the latest live price up to date on a cron schedule and
// publishes every new price to its subscribers. It only resolves while
// enabled reports true, so a shop on MANUAL prices makes no network calls.
type Watcher struct {
	resolver PriceResolver
	enabled  func(ctx context.Context) bool
	log      logrus.FieldLogger

	mu     sync.RWMutex
	latest *goldbook.MarketData
	subs   map[chan goldbook.MarketData]struct{}
	cron   *cron.Cron
}

// NewWatcher returns a stopped watcher. A nil enabled is always true.
func NewWatcher(r PriceResolver, enabled func(ctx context.Context) bool, log logrus.FieldLogger) *Watcher {
	if enabled == nil {
		enabled = func(context.Context) bool { return true }
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{resolver: r, enabled: enabled, log: log, subs: make(map[chan goldbook.MarketData]struct{})}
}

// Refresh resolves the price now.
func (w *Watcher) Refresh(ctx context.Context) (goldbook.MarketData, error) {
	if !w.enabled(ctx) {
		return goldbook.MarketData{}, ErrPaused
	}
	md, err := w.resolver.Resolve(ctx)
	if err != nil {
		return md, err
	}
	w.mu.Lock()
	w.latest = &md
	for ch := range w.subs {
		select {
		case ch <- md:
		default: // slow subscriber, it will get the next one
		}
	}
	w.mu.Unlock()
	return md, nil
}

// Latest returns the last resolved price, ok is false before the first one.
func (w *Watcher) Latest() (md goldbook.MarketData, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.latest == nil {
		return md, false
	}
	return *w.latest, true
}

// Subscribe returns a channel receiving every new price and a function to
// unsubscribe.
func (w *Watcher) Subscribe() (<-chan goldbook.MarketData, func()) {
	ch := make(chan goldbook.MarketData, 1)
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()
	return ch, func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
}

// Start schedules refreshes. A refresh still running when the next one is
// due is skipped.
func (w *Watcher) Start(schedule string) error {
	logger := cron.PrintfLogger(w.log)
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	_, err := c.AddFunc(schedule, func() {
		if _, err := w.Refresh(context.Background()); err != nil && !errors.Is(err, ErrPaused) {
			w.log.WithError(err).Warn("live price refresh failed")
		}
	})
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.cron = c
	w.mu.Unlock()
	c.Start()
	return nil
}

// Stop stops the schedule and waits for a running refresh.
func (w *Watcher) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
