package report

import "time"

type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// ItemRow is the flat input the projection runs over: one row per
// order item, carrying the order's creation time and the dish pricing
// frozen against the item's scale factor.
type ItemRow struct {
	OrderID      int64
	CreatedAt    time.Time
	ScaleFactor  float64
	PricePerBase *float64
	CostPerBase  *float64
}

type Row struct {
	Period      string  `json:"period"`
	OrdersCount int     `json:"orders_count"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
	Profit      float64 `json:"profit"`
}

type Totals struct {
	OrdersCount int     `json:"orders_count"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
	Profit      float64 `json:"profit"`
}

type Report struct {
	Range  Granularity `json:"range"`
	Rows   []Row       `json:"rows"`
	Totals Totals      `json:"totals"`
}
