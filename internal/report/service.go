package report

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"
)

var ErrBadGranularity = errors.New("range must be daily, monthly or yearly")

// Repository feeds the projection. One row per order item.
type Repository interface {
	ListItemRows(ctx context.Context) ([]ItemRow, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) BuildReport(ctx context.Context, g Granularity) (*Report, error) {
	if g != Daily && g != Monthly && g != Yearly {
		return nil, ErrBadGranularity
	}

	rows, err := s.repo.ListItemRows(ctx)
	if err != nil {
		return nil, err
	}
	return Build(rows, g), nil
}

// Build buckets order items by the truncated creation date of their
// order and accumulates revenue, cost and profit per bucket. Revenue is
// price_per_base * scale_factor per item (missing price treated as 0),
// cost likewise. Accumulation stays unrounded; rounding to two digits
// happens only when rows are materialized.
func Build(rows []ItemRow, g Granularity) *Report {
	type bucket struct {
		orders  map[int64]bool
		revenue float64
		cost    float64
	}

	buckets := make(map[string]*bucket)
	for _, row := range rows {
		period := periodKey(row.CreatedAt, g)
		b := buckets[period]
		if b == nil {
			b = &bucket{orders: make(map[int64]bool)}
			buckets[period] = b
		}
		b.orders[row.OrderID] = true
		b.revenue += value(row.PricePerBase) * row.ScaleFactor
		b.cost += value(row.CostPerBase) * row.ScaleFactor
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	// Lexicographic order is chronological: all three key formats are
	// zero-padded.
	sort.Strings(periods)

	rep := &Report{Range: g, Rows: make([]Row, 0, len(periods))}
	for _, period := range periods {
		b := buckets[period]
		rep.Rows = append(rep.Rows, Row{
			Period:      period,
			OrdersCount: len(b.orders),
			Revenue:     round2(b.revenue),
			Cost:        round2(b.cost),
			Profit:      round2(b.revenue - b.cost),
		})
		rep.Totals.OrdersCount += len(b.orders)
		rep.Totals.Revenue += b.revenue
		rep.Totals.Cost += b.cost
	}
	rep.Totals.Revenue = round2(rep.Totals.Revenue)
	rep.Totals.Cost = round2(rep.Totals.Cost)
	rep.Totals.Profit = round2(rep.Totals.Revenue - rep.Totals.Cost)

	return rep
}

func periodKey(t time.Time, g Granularity) string {
	switch g {
	case Yearly:
		return t.Format("2006")
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
