package domain

import "github.com/shopspring/decimal"

// Position is the aggregated holding for one symbol, derived from its lots.
// It has no independent identity or lifecycle; it is recomputed on every read.
type Position struct {
	Symbol        string
	TotalQuantity int64
	// AverageCost is the unweighted arithmetic mean of the purchase prices of
	// the lots, not a quantity-weighted average. This matches the behavior the
	// tracker has always had; see DESIGN.md before changing it.
	AverageCost decimal.Decimal
}

// ValuationState tracks where a symbol is in the current refresh cycle.
// Transitions are Pending -> Priced or Pending -> Unavailable; a new cycle
// resets every symbol back to Pending.
type ValuationState string

const (
	ValuationPending     ValuationState = "PENDING"
	ValuationPriced      ValuationState = "PRICED"
	ValuationUnavailable ValuationState = "UNAVAILABLE"
)

// Valuation extends a Position with a live price and the figures computed from
// it. It exists only in memory during and after a refresh cycle.
type Valuation struct {
	Position
	State        ValuationState
	CurrentPrice decimal.Decimal // zero unless State is Priced
	GainLoss     decimal.Decimal // (CurrentPrice - AverageCost) * TotalQuantity
	TotalValue   decimal.Decimal // CurrentPrice * TotalQuantity
}
