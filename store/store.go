package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/goldbook"
	"github.com/sirupsen/logrus"
)

// Notifier is told about every saved transaction.
type Notifier interface {
	Notify(ctx context.Context, tx goldbook.Transaction) error
}

// Store gives access to the shop collections kept in a Backend.
//
// Read-modify-write cycles are serialized within the process. Concurrent
// processes sharing a backend race with last write wins.
type Store struct {
	backend  Backend
	mu       sync.Mutex
	log      logrus.FieldLogger
	notifier Notifier
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the notifier told about saved transactions.
func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(s *Store) { s.log = l } }

// WithClock sets the clock used for login and backup timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func New(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, log: logrus.StandardLogger(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the backend at location, see OpenBackend.
func Open(location string, opts ...Option) (*Store, error) {
	b, err := OpenBackend(location)
	if err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

func (s *Store) Close() error { return s.backend.Close() }

// Now returns the store clock time.
func (s *Store) Now() time.Time { return s.now() }

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

func (s *Store) Transactions() *Transactions { return &Transactions{s} }
func (s *Store) Permissions() *Permissions   { return &Permissions{s} }
func (s *Store) Settings() *SettingsRepo     { return &SettingsRepo{s} }
func (s *Store) Counters() *Counters         { return &Counters{s} }

func (s *Store) Employees() *Employees {
	return &Employees{collection[goldbook.Employee]{s: s, key: KeyEmployees, id: func(e *goldbook.Employee) *string { return &e.ID }}}
}

func (s *Store) Partners() *Partners {
	return &Partners{collection[goldbook.Partner]{s: s, key: KeyPartners, id: func(p *goldbook.Partner) *string { return &p.ID }}}
}

func (s *Store) Users() *Users {
	return &Users{collection[goldbook.User]{s: s, key: KeyUsers, id: func(u *goldbook.User) *string { return &u.ID }, seed: goldbook.DefaultUsers}}
}

// load decodes key into v. ok is false when the key is absent and v untouched.
func (s *Store) load(ctx context.Context, key string, v any) (ok bool, err error) {
	data, ok, err := s.backend.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cannot decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	return s.backend.Set(ctx, key, data)
}
