package dish

import "time"

// Dish is a recipe defined against one base production size:
// BaseQuantity of BaseUnit (e.g. "1 kg"). Every recipe line states how
// much of an ingredient that base size needs.
type Dish struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	BaseQuantity float64      `json:"base_quantity"`
	BaseUnit     string       `json:"base_unit"`
	PricePerBase *float64     `json:"price_per_base"`
	CostPerBase  *float64     `json:"cost_per_base"`
	CreatedAt    time.Time    `json:"created_at"`
	Ingredients  []RecipeLine `json:"ingredients"`
}

type RecipeLine struct {
	IngredientID   int64   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	AmountPerBase  float64 `json:"amount_per_base"`
	Unit           string  `json:"unit"`
}

// Patch carries optional header updates; nil fields keep current values.
type Patch struct {
	Name         *string  `json:"name"`
	BaseQuantity *float64 `json:"base_quantity"`
	BaseUnit     *string  `json:"base_unit"`
	PricePerBase *float64 `json:"price_per_base"`
	CostPerBase  *float64 `json:"cost_per_base"`
}
