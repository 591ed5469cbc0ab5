package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is a live price for a symbol in whatever currency the quote source
// trades it in.
type Quote struct {
	Price    decimal.Decimal
	Currency string // ISO code, e.g. "INR", "USD"
}

// QuoteSource is the external capability that supplies live prices.
// FetchQuote returns ErrQuoteUnavailable (possibly wrapped) when no usable
// price exists for the symbol. Calls may be slow and may fail per symbol
// independently; callers must tolerate any subset of symbols failing.
//
// Exchange rates are requested through the same interface using the pair
// symbol from RatePairSymbol.
type QuoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (Quote, error)
}

// RatePairSymbol returns the quote-source symbol for the exchange rate from
// one currency into the reporting currency, e.g. RatePairSymbol("USD", "INR")
// is "USDINR=X".
func RatePairSymbol(from, reporting string) string {
	return from + reporting + "=X"
}
