package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
	"github.com/stockfolio/backend/internal/usecase/portfolio"
	"github.com/stockfolio/backend/internal/usecase/view"
)

// addHoldingRequest is the payload for POST /api/holdings. Price is a string
// so callers keep decimal precision.
type addHoldingRequest struct {
	Symbol        string `json:"symbol"`
	Quantity      int64  `json:"quantity"`
	PurchasePrice string `json:"purchasePrice"`
	PurchaseDate  string `json:"purchaseDate,omitempty"` // YYYY-MM-DD, defaults to today
}

type holdingResponse struct {
	ID            int64  `json:"id"`
	Symbol        string `json:"symbol"`
	Quantity      int64  `json:"quantity"`
	PurchasePrice string `json:"purchasePrice"`
	PurchaseDate  string `json:"purchaseDate"`
}

func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		http.Error(w, "invalid purchasePrice format", http.StatusBadRequest)
		return
	}

	input := portfolio.AddLotInput{
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: price,
	}
	if req.PurchaseDate != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, req.PurchaseDate, time.UTC)
		if err != nil {
			http.Error(w, "invalid purchaseDate format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		input.PurchaseDate = parsed
	}

	lot, err := s.portfolio.AddLot(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.resetBoard(r.Context())

	s.writeJSON(w, http.StatusCreated, holdingResponse{
		ID:            lot.ID,
		Symbol:        lot.Symbol,
		Quantity:      lot.Quantity,
		PurchasePrice: lot.PurchasePrice.StringFixed(2),
		PurchaseDate:  lot.PurchaseDate.Format(domain.DateLayout),
	})
}

func (s *Server) handleRemoveHolding(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	deleted, err := s.portfolio.RemoveSymbol(r.Context(), symbol)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.resetBoard(r.Context())

	s.writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	snapshot := s.board.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"holdings":  view.Rows(snapshot, s.currencySymbol),
		"updatedAt": s.board.UpdatedAt().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.engine.Running() {
		s.writeJSON(w, http.StatusConflict, map[string]any{"status": "refresh already running"})
		return
	}

	// Deliberately detached from the request context: the cycle keeps running
	// after this response is sent. The presentation layer polls
	// GET /api/portfolio for progress.
	s.engine.Start(context.Background())

	s.writeJSON(w, http.StatusAccepted, map[string]any{"status": "refresh started"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := domain.NormalizeSymbol(chi.URLParam(r, "symbol"), s.portfolio.ExchangeSuffix)

	observations, err := s.history.ListBySymbol(r.Context(), symbol)
	if err != nil {
		s.writeError(w, err)
		return
	}

	type entry struct {
		Date  string `json:"date"`
		Price string `json:"price"`
	}
	out := make([]entry, 0, len(observations))
	for _, obs := range observations {
		out = append(out, entry{
			Date:  obs.Date.Format(domain.DateLayout),
			Price: obs.Price.StringFixed(2),
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "history": out})
}

// handleExportCSV streams the valuation view as CSV, one row per holding,
// using the same rendered strings the portfolio endpoint serves.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rows := view.Rows(s.board.Snapshot(), s.currencySymbol)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Symbol", "Quantity", "Purchase Price", "Current Price", "Gain/Loss", "Total Value"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.Symbol, row.Quantity, row.PurchaseAvg,
			row.CurrentPrice, row.GainLoss, row.TotalValue,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		s.log.Error().Err(err).Msg("CSV export failed mid-stream")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resetBoard rebuilds the valuation view with Pending placeholders after a
// mutation, so the next read reflects the new position list immediately.
func (s *Server) resetBoard(ctx context.Context) {
	positions, err := s.portfolio.ListPositions(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to rebuild valuation view")
		return
	}
	s.board.Reset(positions)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps domain errors onto HTTP statuses: validation problems are
// the caller's fault, anything persistent is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		http.Error(w, vErr.Error(), http.StatusBadRequest)
		return
	}

	var pErr *domain.PersistenceError
	if errors.As(err, &pErr) {
		s.log.Error().Err(err).Msg("Persistence failure")
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	s.log.Error().Err(err).Msg("Unexpected error")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
