package view

import (
	"strconv"

	"github.com/stockfolio/backend/internal/domain"
)

// Display sentinels for symbols that have no usable price yet.
const (
	SentinelLoading     = "Loading..."
	SentinelUnavailable = "Unavailable"
)

// Row is one valuation rendered for display or export. All six money fields
// are strings: reporting-currency symbol prefix, fixed two decimals, or a
// sentinel while the price is pending/unavailable. This is the contract the
// CSV export depends on.
type Row struct {
	Symbol       string `json:"symbol"`
	Quantity     string `json:"quantity"`
	PurchaseAvg  string `json:"purchaseAvg"`
	CurrentPrice string `json:"currentPrice"`
	GainLoss     string `json:"gainLoss"`
	TotalValue   string `json:"totalValue"`
}

// CurrencySymbol returns the display prefix for an ISO currency code,
// falling back to the code itself.
func CurrencySymbol(code string) string {
	switch code {
	case "INR":
		return "₹"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}

// Rows renders valuations into display rows using the given currency prefix.
func Rows(valuations []domain.Valuation, currencySymbol string) []Row {
	rows := make([]Row, 0, len(valuations))
	for _, v := range valuations {
		row := Row{
			Symbol:      v.Symbol,
			Quantity:    strconv.FormatInt(v.TotalQuantity, 10),
			PurchaseAvg: currencySymbol + v.AverageCost.StringFixed(2),
		}

		switch v.State {
		case domain.ValuationPriced:
			row.CurrentPrice = currencySymbol + v.CurrentPrice.StringFixed(2)
			row.GainLoss = currencySymbol + v.GainLoss.StringFixed(2)
			row.TotalValue = currencySymbol + v.TotalValue.StringFixed(2)
		case domain.ValuationUnavailable:
			row.CurrentPrice = SentinelUnavailable
			row.GainLoss = SentinelUnavailable
			row.TotalValue = SentinelUnavailable
		default:
			row.CurrentPrice = SentinelLoading
			row.GainLoss = SentinelLoading
			row.TotalValue = SentinelLoading
		}

		rows = append(rows, row)
	}
	return rows
}
