package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLotValidate_Valid(t *testing.T) {
	lot := &Lot{
		Symbol:        "RELIANCE.NS",
		Quantity:      10,
		PurchasePrice: decimal.NewFromFloat(150.00),
		PurchaseDate:  time.Now(),
	}

	assert.NoError(t, lot.Validate())
}

func TestLotValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		lot   Lot
		field string
	}{
		{
			name:  "empty symbol",
			lot:   Lot{Symbol: "", Quantity: 10, PurchasePrice: decimal.NewFromInt(100)},
			field: "symbol",
		},
		{
			name:  "zero quantity",
			lot:   Lot{Symbol: "TCS.NS", Quantity: 0, PurchasePrice: decimal.NewFromInt(100)},
			field: "quantity",
		},
		{
			name:  "negative quantity",
			lot:   Lot{Symbol: "TCS.NS", Quantity: -5, PurchasePrice: decimal.NewFromInt(100)},
			field: "quantity",
		},
		{
			name:  "zero price",
			lot:   Lot{Symbol: "TCS.NS", Quantity: 10, PurchasePrice: decimal.Zero},
			field: "purchase_price",
		},
		{
			name:  "negative price",
			lot:   Lot{Symbol: "TCS.NS", Quantity: 10, PurchasePrice: decimal.NewFromInt(-1)},
			field: "purchase_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lot.Validate()
			assert.Error(t, err)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		suffix   string
		expected string
	}{
		{"lowercase with whitespace", "  reliance ", ".NS", "RELIANCE.NS"},
		{"suffix already present", "TCS.NS", ".NS", "TCS.NS"},
		{"lowercase suffix already present", "infy.ns", ".NS", "INFY.NS"},
		{"no suffix configured", "aapl", "", "AAPL"},
		{"empty input stays empty", "   ", ".NS", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSymbol(tt.raw, tt.suffix))
		})
	}
}

func TestDay_TruncatesToCalendarDate(t *testing.T) {
	ts := time.Date(2024, 7, 8, 15, 42, 13, 999, time.UTC)
	day := Day(ts)

	assert.Equal(t, time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2024-07-08", day.Format(DateLayout))
}

func TestRatePairSymbol(t *testing.T) {
	assert.Equal(t, "USDINR=X", RatePairSymbol("USD", "INR"))
	assert.Equal(t, "EURINR=X", RatePairSymbol("EUR", "INR"))
}
