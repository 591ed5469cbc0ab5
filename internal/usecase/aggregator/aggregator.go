// Package aggregator derives positions from raw purchase lots.
package aggregator

import (
	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
)

// Aggregate groups lots by symbol and produces one position per distinct
// symbol, in order of first appearance in the input. For each symbol the
// total quantity is the sum of lot quantities and the average cost is the
// unweighted arithmetic mean of the lot purchase prices.
//
// Pure function: no I/O, no side effects, deterministic for a given input
// (up to input order, which only affects output order, never values).
func Aggregate(lots []domain.Lot) []domain.Position {
	if len(lots) == 0 {
		return []domain.Position{}
	}

	type group struct {
		quantity int64
		priceSum decimal.Decimal
		count    int64
	}

	order := make([]string, 0, len(lots))
	groups := make(map[string]*group, len(lots))

	for _, lot := range lots {
		g, ok := groups[lot.Symbol]
		if !ok {
			g = &group{}
			groups[lot.Symbol] = g
			order = append(order, lot.Symbol)
		}
		g.quantity += lot.Quantity
		g.priceSum = g.priceSum.Add(lot.PurchasePrice)
		g.count++
	}

	positions := make([]domain.Position, 0, len(order))
	for _, symbol := range order {
		g := groups[symbol]
		positions = append(positions, domain.Position{
			Symbol:        symbol,
			TotalQuantity: g.quantity,
			AverageCost:   g.priceSum.Div(decimal.NewFromInt(g.count)),
		})
	}

	return positions
}
