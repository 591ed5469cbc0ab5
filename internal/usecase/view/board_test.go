package view

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/backend/internal/domain"
)

func positions() []domain.Position {
	return []domain.Position{
		{Symbol: "TCS.NS", TotalQuantity: 5, AverageCost: decimal.NewFromInt(3200)},
		{Symbol: "INFY.NS", TotalQuantity: 8, AverageCost: decimal.NewFromInt(1400)},
	}
}

func TestBoard_ResetStartsAllPending(t *testing.T) {
	board := NewBoard()
	board.Reset(positions())

	snapshot := board.Snapshot()
	require.Len(t, snapshot, 2)
	for _, v := range snapshot {
		assert.Equal(t, domain.ValuationPending, v.State)
	}
	assert.Equal(t, "TCS.NS", snapshot[0].Symbol)
	assert.Equal(t, "INFY.NS", snapshot[1].Symbol)
}

func TestBoard_SetPricedAndUnavailable(t *testing.T) {
	board := NewBoard()
	board.Reset(positions())

	board.SetPriced("TCS.NS",
		decimal.NewFromFloat(3300.00),
		decimal.NewFromFloat(500.00),
		decimal.NewFromFloat(16500.00))
	board.SetUnavailable("INFY.NS")

	snapshot := board.Snapshot()
	assert.Equal(t, domain.ValuationPriced, snapshot[0].State)
	assert.True(t, snapshot[0].CurrentPrice.Equal(decimal.NewFromFloat(3300.00)))
	assert.Equal(t, domain.ValuationUnavailable, snapshot[1].State)
	assert.True(t, snapshot[1].CurrentPrice.IsZero())
}

func TestBoard_IgnoresUnknownSymbol(t *testing.T) {
	board := NewBoard()
	board.Reset(positions())

	board.SetPriced("GONE.NS", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	board.SetUnavailable("GONE.NS")

	assert.Len(t, board.Snapshot(), 2)
}

func TestBoard_NewCycleResetsToPending(t *testing.T) {
	board := NewBoard()
	board.Reset(positions())
	board.SetPriced("TCS.NS", decimal.NewFromInt(3300), decimal.NewFromInt(500), decimal.NewFromInt(16500))

	board.Reset(positions())

	for _, v := range board.Snapshot() {
		assert.Equal(t, domain.ValuationPending, v.State)
	}
}

func TestBoard_ConcurrentWriters(t *testing.T) {
	symbols := make([]domain.Position, 0, 64)
	for i := 0; i < 64; i++ {
		symbols = append(symbols, domain.Position{
			Symbol:        "SYM" + string(rune('A'+i%26)) + string(rune('A'+i/26)),
			TotalQuantity: 1,
			AverageCost:   decimal.NewFromInt(100),
		})
	}

	board := NewBoard()
	board.Reset(symbols)

	var wg sync.WaitGroup
	for _, pos := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			board.SetPriced(symbol, decimal.NewFromInt(110), decimal.NewFromInt(10), decimal.NewFromInt(110))
		}(pos.Symbol)
	}
	wg.Wait()

	for _, v := range board.Snapshot() {
		assert.Equal(t, domain.ValuationPriced, v.State)
	}
}

func TestRows_Rendering(t *testing.T) {
	board := NewBoard()
	board.Reset([]domain.Position{
		{Symbol: "X.NS", TotalQuantity: 10, AverageCost: decimal.NewFromFloat(150.00)},
		{Symbol: "Y.NS", TotalQuantity: 3, AverageCost: decimal.NewFromFloat(99.5)},
		{Symbol: "Z.NS", TotalQuantity: 1, AverageCost: decimal.NewFromInt(42)},
	})
	board.SetPriced("X.NS",
		decimal.NewFromFloat(155.25),
		decimal.NewFromFloat(52.50),
		decimal.NewFromFloat(1552.50))
	board.SetUnavailable("Y.NS")

	rows := Rows(board.Snapshot(), CurrencySymbol("INR"))
	require.Len(t, rows, 3)

	assert.Equal(t, Row{
		Symbol:       "X.NS",
		Quantity:     "10",
		PurchaseAvg:  "₹150.00",
		CurrentPrice: "₹155.25",
		GainLoss:     "₹52.50",
		TotalValue:   "₹1552.50",
	}, rows[0])

	assert.Equal(t, SentinelUnavailable, rows[1].CurrentPrice)
	assert.Equal(t, SentinelUnavailable, rows[1].GainLoss)
	assert.Equal(t, "₹99.50", rows[1].PurchaseAvg)

	assert.Equal(t, SentinelLoading, rows[2].CurrentPrice)
	assert.Equal(t, SentinelLoading, rows[2].TotalValue)
}

func TestCurrencySymbol_FallsBackToCode(t *testing.T) {
	assert.Equal(t, "₹", CurrencySymbol("INR"))
	assert.Equal(t, "$", CurrencySymbol("USD"))
	assert.Equal(t, "CHF ", CurrencySymbol("CHF"))
}
