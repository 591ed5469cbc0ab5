// Package quote implements the quote source against the Yahoo Finance chart
// endpoint. Equity symbols and FX pair symbols (e.g. USDINR=X) are fetched
// the same way.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

// YahooClient fetches live quotes from Yahoo Finance.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewYahooClient creates a new Yahoo Finance quote client
func NewYahooClient(log zerolog.Logger) *YahooClient {
	return &YahooClient{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchQuote returns the current price and currency for a symbol, or
// domain.ErrQuoteUnavailable when Yahoo has no usable price for it.
func (c *YahooClient) FetchQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d",
		c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("create quote request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("fetch quote for %s: %w: %v", symbol, domain.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Str("symbol", symbol).Int("status", resp.StatusCode).Msg("Quote endpoint returned error")
		return domain.Quote{}, fmt.Errorf("quote for %s: status %d: %w", symbol, resp.StatusCode, domain.ErrQuoteUnavailable)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Quote{}, fmt.Errorf("decode quote for %s: %w: %v", symbol, domain.ErrQuoteUnavailable, err)
	}

	if len(payload.Chart.Result) == 0 {
		return domain.Quote{}, fmt.Errorf("quote for %s: empty result: %w", symbol, domain.ErrQuoteUnavailable)
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return domain.Quote{}, fmt.Errorf("quote for %s: no market price: %w", symbol, domain.ErrQuoteUnavailable)
	}

	currency := meta.Currency
	if currency == "" {
		// Yahoo omits the currency on some instruments; USD is its default.
		currency = "USD"
	}

	q := domain.Quote{
		Price:    decimal.NewFromFloat(meta.RegularMarketPrice),
		Currency: currency,
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("price", q.Price.String()).
		Str("currency", q.Currency).
		Msg("Fetched quote")

	return q, nil
}
