package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for purchase dates and for the
// price history day key.
const DateLayout = "2006-01-02"

// Lot represents one recorded purchase of a quantity of a symbol.
// Lots are immutable after creation and are only ever deleted by symbol.
type Lot struct {
	ID            int64
	Symbol        string // normalized, exchange-qualified (e.g. "RELIANCE.NS")
	Quantity      int64
	PurchasePrice decimal.Decimal // in the reporting currency
	PurchaseDate  time.Time
	CreatedAt     time.Time
}

// Validate ensures the lot adheres to domain rules.
// Returns a *ValidationError if any field is out of range.
func (l *Lot) Validate() error {
	if l.Symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if l.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	if l.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "purchase_price", Reason: "must be positive"}
	}
	return nil
}

// NormalizeSymbol converts a raw user-entered symbol into its canonical
// exchange-qualified form: trimmed, uppercased, with the exchange suffix
// applied when missing. Normalization happens before storage so that
// aggregation never splits one logical holding into two groups.
func NormalizeSymbol(raw, exchangeSuffix string) string {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		return ""
	}
	if exchangeSuffix != "" && !strings.HasSuffix(symbol, strings.ToUpper(exchangeSuffix)) {
		symbol += strings.ToUpper(exchangeSuffix)
	}
	return symbol
}

// Day truncates a timestamp to its calendar date. Price observations are keyed
// by (symbol, day).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PriceObservation is one daily price record for a symbol. The price history
// holds at most one observation per (symbol, day); a later write for the same
// pair replaces the earlier one.
type PriceObservation struct {
	ID     int64
	Symbol string
	Price  decimal.Decimal // reporting currency
	Date   time.Time       // calendar date, see Day
}
