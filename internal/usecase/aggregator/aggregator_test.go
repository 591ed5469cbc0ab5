package aggregator

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/backend/internal/domain"
)

func lot(symbol string, quantity int64, price float64) domain.Lot {
	return domain.Lot{
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: decimal.NewFromFloat(price),
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]domain.Lot{}))
}

func TestAggregate_SingleSymbol(t *testing.T) {
	positions := Aggregate([]domain.Lot{
		lot("RELIANCE.NS", 10, 150.00),
		lot("RELIANCE.NS", 20, 160.00),
	})

	require.Len(t, positions, 1)
	assert.Equal(t, "RELIANCE.NS", positions[0].Symbol)
	assert.Equal(t, int64(30), positions[0].TotalQuantity)
	// Unweighted mean of the two purchase prices, not quantity-weighted.
	assert.True(t, positions[0].AverageCost.Equal(decimal.NewFromFloat(155.00)),
		"expected 155.00, got %s", positions[0].AverageCost)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	positions := Aggregate([]domain.Lot{
		lot("TCS.NS", 5, 3200),
		lot("INFY.NS", 8, 1400),
		lot("TCS.NS", 3, 3400),
		lot("HDFCBANK.NS", 2, 1500),
	})

	require.Len(t, positions, 3)
	assert.Equal(t, "TCS.NS", positions[0].Symbol)
	assert.Equal(t, "INFY.NS", positions[1].Symbol)
	assert.Equal(t, "HDFCBANK.NS", positions[2].Symbol)
	assert.Equal(t, int64(8), positions[0].TotalQuantity)
}

// Permuting the input lot sequence must yield identical per-symbol results.
func TestAggregate_OrderIndependent(t *testing.T) {
	lots := []domain.Lot{
		lot("TCS.NS", 5, 3200.50),
		lot("INFY.NS", 8, 1400.25),
		lot("TCS.NS", 3, 3400.00),
		lot("HDFCBANK.NS", 2, 1500.75),
		lot("INFY.NS", 1, 1380.10),
		lot("TCS.NS", 7, 3100.00),
	}

	baseline := bySymbol(Aggregate(lots))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]domain.Lot, len(lots))
		copy(shuffled, lots)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := bySymbol(Aggregate(shuffled))
		require.Len(t, got, len(baseline))
		for symbol, want := range baseline {
			have, ok := got[symbol]
			require.True(t, ok, "missing symbol %s", symbol)
			assert.Equal(t, want.TotalQuantity, have.TotalQuantity)
			assert.True(t, want.AverageCost.Equal(have.AverageCost),
				"%s: expected %s, got %s", symbol, want.AverageCost, have.AverageCost)
		}
	}
}

func bySymbol(positions []domain.Position) map[string]domain.Position {
	out := make(map[string]domain.Position, len(positions))
	for _, p := range positions {
		out[p.Symbol] = p
	}
	return out
}
