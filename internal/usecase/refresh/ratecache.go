package refresh

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// rateCache deduplicates exchange-rate lookups within one refresh cycle: the
// first worker needing a currency performs the fetch, concurrent workers for
// the same currency block on the in-flight resolution instead of re-fetching.
// A cache lives exactly as long as its cycle, so rates never go stale across
// cycles.
type rateCache struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
}

type rateEntry struct {
	ready chan struct{}
	rate  decimal.Decimal
	err   error
}

func newRateCache() *rateCache {
	return &rateCache{entries: make(map[string]*rateEntry)}
}

// get returns the rate for a currency, invoking fetch at most once per
// currency for the lifetime of the cache. If the owning fetch fails, every
// waiter receives the same error.
func (c *rateCache) get(ctx context.Context, currency string, fetch func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	c.mu.Lock()
	entry, ok := c.entries[currency]
	if !ok {
		entry = &rateEntry{ready: make(chan struct{})}
		c.entries[currency] = entry
		c.mu.Unlock()

		entry.rate, entry.err = fetch(ctx)
		close(entry.ready)
		return entry.rate, entry.err
	}
	c.mu.Unlock()

	select {
	case <-entry.ready:
		return entry.rate, entry.err
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	}
}
