package order

import "time"

// Order is one catering booking: a customer, optional scheduling
// metadata, and one or more dish items with their scaled ingredient
// lines. The whole aggregate is written atomically.
type Order struct {
	ID         int64  `json:"id"`
	UserID     string `json:"user_id"`
	CustomerID int64  `json:"customer_id"`

	CustomerName    string  `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerAddress *string `json:"customer_address"`

	PersonCount     *int    `json:"person_count"`
	BookingDate     *string `json:"booking_date"`
	BookingTime     *string `json:"booking_time"`
	DeliveryDate    *string `json:"delivery_date"`
	DeliveryTime    *string `json:"delivery_time"`
	DeliveryAddress *string `json:"delivery_address"`
	Notes           *string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
}

// Item is one dish within an order. ScaleFactor is the requested
// quantity divided by the dish's base quantity and is kept for the
// audit trail; the ingredient lines are derived once at write time.
type Item struct {
	ID                int64   `json:"id"`
	DishID            int64   `json:"dish_id"`
	DishName          string  `json:"dish_name"`
	RequestedQuantity float64 `json:"requested_quantity"`
	RequestedUnit     string  `json:"requested_unit"`
	ScaleFactor       float64 `json:"scale_factor"`
	Ingredients       []Line  `json:"ingredients,omitempty"`
}

// Line is one scaled ingredient amount attached to an order item.
type Line struct {
	IngredientID   int64   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	ScaledAmount   float64 `json:"scaled_amount"`
	Unit           string  `json:"unit"`
}

// HeaderPatch carries optional order-header updates; nil keeps current values.
type HeaderPatch struct {
	CustomerID      *int64
	PersonCount     *int
	BookingDate     *string
	BookingTime     *string
	DeliveryDate    *string
	DeliveryTime    *string
	DeliveryAddress *string
	Notes           *string
}
