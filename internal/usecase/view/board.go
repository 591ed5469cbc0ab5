// Package view holds the in-memory valuation snapshot the presentation layer
// reads, and its rendering into displayable rows.
package view

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
)

// Board is the shared valuation state mutated by concurrent refresh workers
// and read by the presentation layer. All access goes through the mutex; two
// workers never interleave writes to the same entry because each worker owns
// exactly one symbol per cycle.
type Board struct {
	mu        sync.RWMutex
	order     []string
	entries   map[string]domain.Valuation
	updatedAt time.Time
}

// NewBoard creates an empty Board
func NewBoard() *Board {
	return &Board{entries: make(map[string]domain.Valuation)}
}

// Reset replaces the board contents with one Pending entry per position.
// Called at the start of every refresh cycle and after add/remove operations.
func (b *Board) Reset(positions []domain.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.order = make([]string, 0, len(positions))
	b.entries = make(map[string]domain.Valuation, len(positions))
	for _, pos := range positions {
		b.order = append(b.order, pos.Symbol)
		b.entries[pos.Symbol] = domain.Valuation{
			Position: pos,
			State:    domain.ValuationPending,
		}
	}
	b.updatedAt = time.Now()
}

// SetPriced records a successful valuation for a symbol. Unknown symbols
// (e.g. removed mid-cycle) are ignored.
func (b *Board) SetPriced(symbol string, currentPrice, gainLoss, totalValue decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[symbol]
	if !ok {
		return
	}
	entry.State = domain.ValuationPriced
	entry.CurrentPrice = currentPrice
	entry.GainLoss = gainLoss
	entry.TotalValue = totalValue
	b.entries[symbol] = entry
	b.updatedAt = time.Now()
}

// SetUnavailable marks a symbol's valuation as unavailable for this cycle.
func (b *Board) SetUnavailable(symbol string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[symbol]
	if !ok {
		return
	}
	entry.State = domain.ValuationUnavailable
	entry.CurrentPrice = decimal.Zero
	entry.GainLoss = decimal.Zero
	entry.TotalValue = decimal.Zero
	b.entries[symbol] = entry
	b.updatedAt = time.Now()
}

// Snapshot returns the current valuations in stable position order.
func (b *Board) Snapshot() []domain.Valuation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Valuation, 0, len(b.order))
	for _, symbol := range b.order {
		out = append(out, b.entries[symbol])
	}
	return out
}

// UpdatedAt returns when the board last changed.
func (b *Board) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}
