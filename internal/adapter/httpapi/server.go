// Package httpapi exposes the portfolio operations over HTTP. It is the
// caller surface the presentation layer talks to; all engine semantics live
// in the usecase packages.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/stockfolio/backend/internal/domain"
	"github.com/stockfolio/backend/internal/usecase/portfolio"
	"github.com/stockfolio/backend/internal/usecase/refresh"
	"github.com/stockfolio/backend/internal/usecase/view"
)

// Server wires the usecase services into an HTTP router.
type Server struct {
	portfolio *portfolio.Service
	engine    *refresh.Engine
	board     *view.Board
	history   domain.PriceHistoryRepository

	currencySymbol string
	log            zerolog.Logger
	router         chi.Router
}

// NewServer creates the HTTP server. reportingCurrency is the ISO code used
// to pick the display prefix for rendered rows.
func NewServer(
	portfolioService *portfolio.Service,
	engine *refresh.Engine,
	board *view.Board,
	history domain.PriceHistoryRepository,
	reportingCurrency string,
	apiToken string,
	log zerolog.Logger,
) *Server {
	s := &Server{
		portfolio:      portfolioService,
		engine:         engine,
		board:          board,
		history:        history,
		currencySymbol: view.CurrencySymbol(reportingCurrency),
		log:            log.With().Str("component", "httpapi").Logger(),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/api/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RequireToken(apiToken))

		r.Post("/api/holdings", s.handleAddHolding)
		r.Delete("/api/holdings/{symbol}", s.handleRemoveHolding)
		r.Get("/api/holdings/{symbol}/history", s.handleHistory)
		r.Get("/api/portfolio", s.handlePortfolio)
		r.Post("/api/portfolio/refresh", s.handleRefresh)
		r.Get("/api/portfolio/export", s.handleExportCSV)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
