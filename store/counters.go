package store

import (
	"context"

	"github.com/etnz/goldbook"
)

// firstCount is the counter value before the first id, so ids start at 1001.
const firstCount = 1000

// Counters hands out the per kind id sequences.
type Counters struct{ s *Store }

// All returns the last value of every sequence.
func (c *Counters) All(ctx context.Context) (map[string]int, error) {
	counters := make(map[string]int)
	if _, err := c.s.load(ctx, KeyCounters, &counters); err != nil {
		return nil, err
	}
	return counters, nil
}

// NextID increments the sequence of kind and returns the new id, "B-1001"
// for the first BUY.
func (c *Counters) NextID(ctx context.Context, kind string) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.nextID(ctx, kind)
}

func (c *Counters) nextID(ctx context.Context, kind string) (string, error) {
	counters, err := c.All(ctx)
	if err != nil {
		return "", err
	}
	n, ok := counters[kind]
	if !ok {
		n = firstCount
	}
	n++
	counters[kind] = n
	if err := c.s.save(ctx, KeyCounters, counters); err != nil {
		return "", err
	}
	return goldbook.FormatID(kind, n), nil
}
