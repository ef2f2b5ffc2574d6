package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/goldbook"
)

// Transactions is the journal of shop operations, newest first.
type Transactions struct{ s *Store }

// List returns the transactions, newest first.
func (t *Transactions) List(ctx context.Context) ([]goldbook.Transaction, error) {
	var txs []goldbook.Transaction
	if _, err := t.s.load(ctx, KeyTransactions, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Get returns the transaction with id.
func (t *Transactions) Get(ctx context.Context, id string) (goldbook.Transaction, error) {
	txs, err := t.List(ctx)
	if err != nil {
		return goldbook.Transaction{}, err
	}
	i := slices.IndexFunc(txs, func(tx goldbook.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return goldbook.Transaction{}, fmt.Errorf("transaction %q: %w", id, goldbook.ErrNotFound)
	}
	return txs[i], nil
}

// Add validates tx, gives it the next id of its type when it has none and
// saves it in front of the journal. The notifier, if any, is then told;
// its failure is logged and does not fail the call.
func (t *Transactions) Add(ctx context.Context, tx goldbook.Transaction) (goldbook.Transaction, error) {
	if err := goldbook.Validate(tx); err != nil {
		return tx, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if tx.ID == "" {
		id, err := t.s.Counters().nextID(ctx, string(tx.Type))
		if err != nil {
			return tx, err
		}
		tx.ID = id
	}
	txs, err := t.List(ctx)
	if err != nil {
		return tx, err
	}
	if err := t.s.save(ctx, KeyTransactions, append([]goldbook.Transaction{tx}, txs...)); err != nil {
		return tx, err
	}
	log := t.s.log.WithField("id", tx.ID)
	log.WithField("total", tx.TotalAmount).Info("transaction saved")

	if t.s.notifier != nil {
		if err := t.s.notifier.Notify(ctx, tx); err != nil {
			log.WithError(err).Warn("notification failed")
		}
	}
	return tx, nil
}

// Clear removes every transaction, the id counters and the permissions.
func (t *Transactions) Clear(ctx context.Context) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, key := range []string{KeyTransactions, KeyCounters, KeyPermissions} {
		if err := t.s.backend.Delete(ctx, key); err != nil {
			return err
		}
	}
	t.s.log.Warn("transactions cleared")
	return nil
}
