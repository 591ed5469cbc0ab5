package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/backend/internal/domain"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func addLot(t *testing.T, repo domain.LotRepository, symbol string, quantity int64, price float64) domain.Lot {
	t.Helper()
	lot := domain.Lot{
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: decimal.NewFromFloat(price),
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Add(context.Background(), &lot))
	return lot
}

func TestLotRepository_AddAssignsIDAndCreatedAt(t *testing.T) {
	repo := NewLotRepository(setupDB(t))

	lot := addLot(t, repo, "RELIANCE.NS", 10, 150.00)

	assert.Greater(t, lot.ID, int64(0))
	assert.False(t, lot.CreatedAt.IsZero())
	assert.Equal(t, "RELIANCE.NS", lot.Symbol)
	assert.True(t, lot.PurchasePrice.Equal(decimal.NewFromFloat(150.00)),
		"expected 150.00, got %s", lot.PurchasePrice)
	assert.Equal(t, "2024-01-15", lot.PurchaseDate.Format(domain.DateLayout))
}

func TestLotRepository_ListInsertionOrder(t *testing.T) {
	repo := NewLotRepository(setupDB(t))
	ctx := context.Background()

	addLot(t, repo, "TCS.NS", 5, 3200.00)
	addLot(t, repo, "INFY.NS", 8, 1400.00)
	addLot(t, repo, "TCS.NS", 3, 3400.00)

	lots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 3)
	assert.Equal(t, "TCS.NS", lots[0].Symbol)
	assert.Equal(t, "INFY.NS", lots[1].Symbol)
	assert.Equal(t, "TCS.NS", lots[2].Symbol)
	assert.True(t, lots[0].ID < lots[1].ID && lots[1].ID < lots[2].ID)
}

func TestLotRepository_ListEmpty(t *testing.T) {
	repo := NewLotRepository(setupDB(t))

	lots, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestLotRepository_RemoveBySymbol(t *testing.T) {
	repo := NewLotRepository(setupDB(t))
	ctx := context.Background()

	addLot(t, repo, "TCS.NS", 5, 3200.00)
	addLot(t, repo, "TCS.NS", 3, 3400.00)
	addLot(t, repo, "INFY.NS", 8, 1400.00)

	deleted, err := repo.RemoveBySymbol(ctx, "TCS.NS")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	lots, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "INFY.NS", lots[0].Symbol)
}

func TestLotRepository_RemoveUnknownSymbolIsNoOp(t *testing.T) {
	repo := NewLotRepository(setupDB(t))

	deleted, err := repo.RemoveBySymbol(context.Background(), "NOSUCH.NS")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
