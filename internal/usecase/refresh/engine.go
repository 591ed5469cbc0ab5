// Package refresh orchestrates the concurrent price refresh cycle: fetching a
// quote for every held symbol, normalizing currencies into the reporting
// currency, updating the valuation board, and persisting daily price
// observations.
package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
	"github.com/stockfolio/backend/internal/usecase/view"
)

// ErrRefreshRunning is returned when a cycle is requested while another one
// is still in flight.
var ErrRefreshRunning = errors.New("refresh cycle already running")

// PositionLister is the slice of the portfolio service the engine needs.
type PositionLister interface {
	ListPositions(ctx context.Context) ([]domain.Position, error)
}

// Result summarizes one completed refresh cycle. Individual quote failures
// are counted, never raised as errors.
type Result struct {
	CycleID   uuid.UUID
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Engine runs refresh cycles. One coordinating goroutine plus up to
// MaxConcurrent workers, one per held symbol; the coordinator blocks only at
// the join point.
type Engine struct {
	positions PositionLister
	history   domain.PriceHistoryRepository
	quotes    domain.QuoteSource
	board     *view.Board

	reportingCurrency string
	maxConcurrent     int
	log               zerolog.Logger

	running atomic.Bool
}

// NewEngine creates a refresh Engine. maxConcurrent bounds the number of
// parallel quote fetches; values < 1 default to 4.
func NewEngine(
	positions PositionLister,
	history domain.PriceHistoryRepository,
	quotes domain.QuoteSource,
	board *view.Board,
	reportingCurrency string,
	maxConcurrent int,
	log zerolog.Logger,
) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 4
	}
	return &Engine{
		positions:         positions,
		history:           history,
		quotes:            quotes,
		board:             board,
		reportingCurrency: reportingCurrency,
		maxConcurrent:     maxConcurrent,
		log:               log.With().Str("component", "refresh").Logger(),
	}
}

// Run executes one refresh cycle synchronously. It returns an error only when
// the position list cannot be read or a cycle is already running; per-symbol
// failures are reported through Result counts and the board.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return Result{}, ErrRefreshRunning
	}
	defer e.running.Store(false)

	start := time.Now()
	result := Result{CycleID: uuid.New()}
	log := e.log.With().Str("cycle", result.CycleID.String()).Logger()

	// Snapshot of the position list; the store is not locked for the duration
	// of the cycle. Add/remove operations that land mid-cycle are picked up
	// by the next cycle.
	positions, err := e.positions.ListPositions(ctx)
	if err != nil {
		return Result{}, err
	}

	e.board.Reset(positions)
	if len(positions) == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	log.Info().Int("symbols", len(positions)).Msg("Refresh cycle started")

	rates := newRateCache()
	sem := make(chan struct{}, e.maxConcurrent)
	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64

	for _, pos := range positions {
		wg.Add(1)
		go func(pos domain.Position) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				e.board.SetUnavailable(pos.Symbol)
				failed.Add(1)
				return
			}

			if err := e.refreshSymbol(ctx, log, pos, rates); err != nil {
				log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("Symbol unavailable this cycle")
				e.board.SetUnavailable(pos.Symbol)
				failed.Add(1)
				return
			}
			succeeded.Add(1)
		}(pos)
	}

	wg.Wait()

	result.Succeeded = int(succeeded.Load())
	result.Failed = int(failed.Load())
	result.Elapsed = time.Since(start)

	log.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("elapsed", result.Elapsed).
		Msg("Refresh cycle finished")

	return result, nil
}

// Start launches a refresh cycle in the background and returns a channel that
// receives the Result once the cycle completes. The channel is buffered, so
// callers that only wanted fire-and-forget may drop it.
func (e *Engine) Start(ctx context.Context) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		result, err := e.Run(ctx)
		if err != nil {
			if !errors.Is(err, ErrRefreshRunning) {
				e.log.Error().Err(err).Msg("Refresh cycle failed to start")
			}
			close(done)
			return
		}
		done <- result
	}()
	return done
}

// Running reports whether a cycle is currently in flight.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// refreshSymbol prices a single position: fetch the quote, normalize its
// currency, persist the observation, and publish the valuation.
func (e *Engine) refreshSymbol(ctx context.Context, log zerolog.Logger, pos domain.Position, rates *rateCache) error {
	quote, err := e.quotes.FetchQuote(ctx, pos.Symbol)
	if err != nil {
		return err
	}

	price, err := e.normalize(ctx, quote, rates)
	if err != nil {
		return err
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return domain.ErrQuoteUnavailable
	}

	// A failed ledger write is logged and treated as this symbol's fetch
	// failing; it must not abort the batch.
	obs := domain.PriceObservation{
		Symbol: pos.Symbol,
		Price:  price,
		Date:   domain.Day(time.Now()),
	}
	if err := e.history.Upsert(ctx, obs); err != nil {
		log.Error().Err(err).Str("symbol", pos.Symbol).Msg("Failed to persist price observation")
		return err
	}

	quantity := decimal.NewFromInt(pos.TotalQuantity)
	gainLoss := price.Sub(pos.AverageCost).Mul(quantity)
	totalValue := price.Mul(quantity)
	e.board.SetPriced(pos.Symbol, price, gainLoss, totalValue)

	log.Debug().
		Str("symbol", pos.Symbol).
		Str("price", price.String()).
		Str("gain_loss", gainLoss.String()).
		Msg("Symbol priced")

	return nil
}

// normalize converts a quote into the reporting currency. Rounding is to two
// decimal places, half away from zero (decimal.Round semantics). The rate for
// a foreign currency is fetched through the quote source using the pair
// symbol (e.g. USDINR=X) at most once per currency per cycle.
func (e *Engine) normalize(ctx context.Context, quote domain.Quote, rates *rateCache) (decimal.Decimal, error) {
	if quote.Currency == e.reportingCurrency {
		return quote.Price.Round(2), nil
	}

	rate, err := rates.get(ctx, quote.Currency, func(ctx context.Context) (decimal.Decimal, error) {
		pair := domain.RatePairSymbol(quote.Currency, e.reportingCurrency)
		rateQuote, err := e.quotes.FetchQuote(ctx, pair)
		if err != nil {
			return decimal.Zero, err
		}
		if rateQuote.Price.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, domain.ErrQuoteUnavailable
		}
		return rateQuote.Price, nil
	})
	if err != nil {
		// No rate means no guess: the symbol is unavailable this cycle.
		return decimal.Zero, err
	}

	return quote.Price.Mul(rate).Round(2), nil
}
