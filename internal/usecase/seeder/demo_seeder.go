// Package seeder populates an empty portfolio with demo holdings so a fresh
// install has something to show.
package seeder

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stockfolio/backend/internal/domain"
	"github.com/stockfolio/backend/internal/usecase/portfolio"
)

// demoLot defines one demo holding to be seeded
type demoLot struct {
	symbol   string
	quantity int64
	price    string
	date     string
}

var demoLots = []demoLot{
	{"RELIANCE", 10, "2850.00", "2024-01-15"},
	{"TCS", 5, "3720.00", "2024-02-01"},
	{"INFY", 8, "1480.00", "2024-01-20"},
	{"HDFCBANK", 12, "1545.00", "2024-03-01"},
	{"ICICIBANK", 15, "1020.00", "2024-02-15"},
	{"WIPRO", 20, "465.00", "2024-01-10"},
	{"SBIN", 18, "760.00", "2024-02-20"},
}

// DemoSeeder seeds demo purchase lots through the portfolio service
type DemoSeeder struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(service *portfolio.Service, log zerolog.Logger) *DemoSeeder {
	return &DemoSeeder{
		service: service,
		log:     log.With().Str("component", "seeder").Logger(),
	}
}

// Seed inserts the demo lots when the portfolio is empty. A non-empty
// portfolio is left untouched, so seeding is safe to run on every startup.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	positions, err := s.service.ListPositions(ctx)
	if err != nil {
		return err
	}
	if len(positions) > 0 {
		s.log.Debug().Int("positions", len(positions)).Msg("Portfolio not empty, skipping demo seed")
		return nil
	}

	for _, demo := range demoLots {
		price, err := decimal.NewFromString(demo.price)
		if err != nil {
			return err
		}
		date, err := time.ParseInLocation(domain.DateLayout, demo.date, time.UTC)
		if err != nil {
			return err
		}

		if _, err := s.service.AddLot(ctx, portfolio.AddLotInput{
			Symbol:        demo.symbol,
			Quantity:      demo.quantity,
			PurchasePrice: price,
			PurchaseDate:  date,
		}); err != nil {
			return err
		}
	}

	s.log.Info().Int("lots", len(demoLots)).Msg("Seeded demo portfolio")
	return nil
}
