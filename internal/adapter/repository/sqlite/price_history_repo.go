package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
)

// priceHistoryRepository implements domain.PriceHistoryRepository
type priceHistoryRepository struct {
	db *DB
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *DB) domain.PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// Upsert inserts an observation, replacing any existing one for the same
// (symbol, day). A single statement, so the write is atomic: either the new
// row is in place or the old one is untouched.
func (r *priceHistoryRepository) Upsert(ctx context.Context, obs domain.PriceObservation) error {
	query := `
		INSERT INTO price_history (symbol, price, date)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET price = excluded.price
	`

	_, err := r.db.ExecContext(ctx, query,
		obs.Symbol,
		obs.Price.InexactFloat64(),
		domain.Day(obs.Date).Format(domain.DateLayout),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "upsert price observation", Err: err}
	}

	return nil
}

// ListBySymbol returns all observations for a symbol ordered by date ascending.
func (r *priceHistoryRepository) ListBySymbol(ctx context.Context, symbol string) ([]domain.PriceObservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, symbol, price, date FROM price_history
		 WHERE symbol = ? ORDER BY date ASC`, symbol)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "query price history", Err: err}
	}
	defer rows.Close()

	observations := make([]domain.PriceObservation, 0)
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan price observation", Err: err}
		}
		observations = append(observations, *obs)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate price history", Err: err}
	}

	return observations, nil
}

// Latest returns the most recent observation for a symbol, or nil when the
// symbol has no history.
func (r *priceHistoryRepository) Latest(ctx context.Context, symbol string) (*domain.PriceObservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, symbol, price, date FROM price_history
		 WHERE symbol = ? ORDER BY date DESC LIMIT 1`, symbol)

	obs, err := scanObservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.PersistenceError{Op: "latest price observation", Err: err}
	}

	return obs, nil
}

// CountOnDate reports how many observations exist for a symbol on a day.
func (r *priceHistoryRepository) CountOnDate(ctx context.Context, symbol string, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM price_history WHERE symbol = ? AND date = ?`,
		symbol, domain.Day(date).Format(domain.DateLayout)).Scan(&count)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "count price observations", Err: err}
	}

	return count, nil
}

func scanObservation(row rowScanner) (*domain.PriceObservation, error) {
	var obs domain.PriceObservation
	var price float64
	var date string

	if err := row.Scan(&obs.ID, &obs.Symbol, &price, &date); err != nil {
		return nil, err
	}

	obs.Price = decimal.NewFromFloat(price)

	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	obs.Date = parsed

	return &obs, nil
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, value, time.UTC)
}
