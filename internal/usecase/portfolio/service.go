// Package portfolio exposes the caller-facing operations on the holdings
// store: adding purchase lots, removing a symbol, and listing aggregated
// positions.
package portfolio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
	"github.com/stockfolio/backend/internal/usecase/aggregator"
)

// AddLotInput represents the input for recording a purchase
type AddLotInput struct {
	Symbol        string
	Quantity      int64
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time // zero value means today
}

// Service handles portfolio mutation and read operations
type Service struct {
	Lots domain.LotRepository

	// ExchangeSuffix is appended to symbols that are not already
	// exchange-qualified (e.g. ".NS").
	ExchangeSuffix string
}

// NewService creates a new portfolio Service instance
func NewService(lots domain.LotRepository, exchangeSuffix string) *Service {
	return &Service{
		Lots:           lots,
		ExchangeSuffix: exchangeSuffix,
	}
}

// AddLot validates and persists a new purchase lot.
// Logic:
//  1. Normalize the symbol (uppercase, trim, exchange suffix)
//  2. Validate quantity/price/symbol; a *domain.ValidationError is returned
//     synchronously and nothing is written
//  3. Persist through the lot repository, which assigns the ID
func (s *Service) AddLot(ctx context.Context, input AddLotInput) (*domain.Lot, error) {
	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = domain.Day(time.Now())
	}

	lot := &domain.Lot{
		Symbol:        domain.NormalizeSymbol(input.Symbol, s.ExchangeSuffix),
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  purchaseDate,
	}

	if err := lot.Validate(); err != nil {
		return nil, err
	}

	if err := s.Lots.Add(ctx, lot); err != nil {
		return nil, err
	}

	return lot, nil
}

// RemoveSymbol deletes every lot recorded under the (normalized) symbol and
// returns how many were removed. Removing a symbol that has no lots is a
// no-op, not an error.
func (s *Service) RemoveSymbol(ctx context.Context, symbol string) (int64, error) {
	normalized := domain.NormalizeSymbol(symbol, s.ExchangeSuffix)
	if normalized == "" {
		return 0, &domain.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}

	return s.Lots.RemoveBySymbol(ctx, normalized)
}

// ListPositions returns the current aggregated positions, one per held
// symbol, in order of first purchase. An empty portfolio yields an empty
// slice, not an error.
func (s *Service) ListPositions(ctx context.Context) ([]domain.Position, error) {
	lots, err := s.Lots.List(ctx)
	if err != nil {
		return nil, err
	}

	return aggregator.Aggregate(lots), nil
}
