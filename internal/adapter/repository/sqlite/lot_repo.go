package sqlite

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
)

// lotRepository implements domain.LotRepository
type lotRepository struct {
	db *DB
}

// NewLotRepository creates a new lot repository
func NewLotRepository(db *DB) domain.LotRepository {
	return &lotRepository{db: db}
}

// Add persists a new lot and fills in its store-assigned ID and CreatedAt.
func (r *lotRepository) Add(ctx context.Context, lot *domain.Lot) error {
	query := `
		INSERT INTO portfolio (symbol, quantity, purchase_price, purchase_date)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		lot.Symbol,
		lot.Quantity,
		lot.PurchasePrice.InexactFloat64(),
		lot.PurchaseDate.Format(domain.DateLayout),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "insert lot", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &domain.PersistenceError{Op: "lot last insert id", Err: err}
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, symbol, quantity, purchase_price, purchase_date, created_at
		 FROM portfolio WHERE id = ?`, id)

	stored, err := scanLot(row)
	if err != nil {
		return &domain.PersistenceError{Op: "fetch inserted lot", Err: err}
	}

	*lot = *stored
	return nil
}

// RemoveBySymbol deletes all lots for the given normalized symbol.
func (r *lotRepository) RemoveBySymbol(ctx context.Context, symbol string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE symbol = ?`, symbol)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "delete lots", Err: err}
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.PersistenceError{Op: "lot rows affected", Err: err}
	}

	return deleted, nil
}

// List returns all lots in insertion order.
func (r *lotRepository) List(ctx context.Context) ([]domain.Lot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, symbol, quantity, purchase_price, purchase_date, created_at
		 FROM portfolio ORDER BY id ASC`)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "query lots", Err: err}
	}
	defer rows.Close()

	lots := make([]domain.Lot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan lot", Err: err}
		}
		lots = append(lots, *lot)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate lots", Err: err}
	}

	return lots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (*domain.Lot, error) {
	var lot domain.Lot
	var price float64
	var purchaseDate string

	if err := row.Scan(&lot.ID, &lot.Symbol, &lot.Quantity, &price, &purchaseDate, &lot.CreatedAt); err != nil {
		return nil, err
	}

	lot.PurchasePrice = decimal.NewFromFloat(price)

	parsed, err := parseDate(purchaseDate)
	if err != nil {
		return nil, err
	}
	lot.PurchaseDate = parsed

	return &lot, nil
}
