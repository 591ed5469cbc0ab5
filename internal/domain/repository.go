package domain

import (
	"context"
	"time"
)

// LotRepository defines the interface for lot persistence operations
type LotRepository interface {
	// Add persists a new lot and fills in its store-assigned ID and CreatedAt.
	// The lot must already be validated and its symbol normalized.
	Add(ctx context.Context, lot *Lot) error

	// RemoveBySymbol deletes all lots for the given normalized symbol and
	// returns how many were deleted. Removing a symbol with no lots is a
	// no-op, not an error.
	RemoveBySymbol(ctx context.Context, symbol string) (int64, error)

	// List returns all lots ordered by ID, i.e. in insertion order. The
	// aggregator relies on this order to group symbols by first appearance.
	List(ctx context.Context) ([]Lot, error)
}

// PriceHistoryRepository defines the interface for the daily price ledger
type PriceHistoryRepository interface {
	// Upsert inserts an observation, or replaces the existing one for the
	// same (symbol, day). The write is atomic and last-write-wins.
	Upsert(ctx context.Context, obs PriceObservation) error

	// ListBySymbol returns all observations for a symbol ordered by date
	// ascending.
	ListBySymbol(ctx context.Context, symbol string) ([]PriceObservation, error)

	// Latest returns the most recent observation for a symbol, or nil when
	// the symbol has no history.
	Latest(ctx context.Context, symbol string) (*PriceObservation, error)

	// CountOnDate reports how many observations exist for a symbol on a given
	// day. Used by callers that need to assert ledger invariants.
	CountOnDate(ctx context.Context, symbol string, date time.Time) (int, error)
}
