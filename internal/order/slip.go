package order

import (
	"sort"
	"time"
)

type SlipDish struct {
	DishName string  `json:"dish_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type SlipItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IngredientSlip is the pull list for one order: ingredient amounts
// merged across all items.
type IngredientSlip struct {
	OrderID       int64      `json:"order_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone *string    `json:"customer_phone"`
	Dishes        []SlipDish `json:"dishes"`
	Items         []SlipItem `json:"items"`
}

// OrderSlip is the header view of an order, no ingredient detail.
type OrderSlip struct {
	OrderID         int64      `json:"order_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   *string    `json:"customer_phone"`
	CustomerEmail   *string    `json:"customer_email"`
	CustomerAddress *string    `json:"customer_address"`
	PersonCount     *int       `json:"person_count"`
	BookingDate     *string    `json:"booking_date"`
	BookingTime     *string    `json:"booking_time"`
	DeliveryDate    *string    `json:"delivery_date"`
	DeliveryTime    *string    `json:"delivery_time"`
	Dishes          []SlipDish `json:"dishes"`
	CreatedAt       time.Time  `json:"created_at"`
	Notes           *string    `json:"notes"`
}

// BuildIngredientSlip merges ingredient lines across all items of the
// order, keyed by (ingredient name, unit). Amounts for the same key are
// summed; the same ingredient in different units stays on separate
// lines. Output is ordered by ingredient name.
func BuildIngredientSlip(o *Order) *IngredientSlip {
	type key struct {
		name string
		unit string
	}

	merged := make(map[key]float64)
	dishes := make([]SlipDish, 0, len(o.Items))

	for _, item := range o.Items {
		dishes = append(dishes, SlipDish{
			DishName: item.DishName,
			Quantity: item.RequestedQuantity,
			Unit:     item.RequestedUnit,
		})
		for _, line := range item.Ingredients {
			merged[key{line.IngredientName, line.Unit}] += line.ScaledAmount
		}
	}

	items := make([]SlipItem, 0, len(merged))
	for k, amount := range merged {
		items = append(items, SlipItem{Name: k.name, Amount: amount, Unit: k.unit})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})

	return &IngredientSlip{
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Dishes:        dishes,
		Items:         items,
	}
}

// BuildOrderSlip projects the order header. The customer address falls
// back to the delivery address when the customer has none on file.
func BuildOrderSlip(o *Order) *OrderSlip {
	address := o.CustomerAddress
	if address == nil {
		address = o.DeliveryAddress
	}

	dishes := make([]SlipDish, 0, len(o.Items))
	for _, item := range o.Items {
		dishes = append(dishes, SlipDish{
			DishName: item.DishName,
			Quantity: item.RequestedQuantity,
			Unit:     item.RequestedUnit,
		})
	}

	return &OrderSlip{
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: address,
		PersonCount:     o.PersonCount,
		BookingDate:     o.BookingDate,
		BookingTime:     o.BookingTime,
		DeliveryDate:    o.DeliveryDate,
		DeliveryTime:    o.DeliveryTime,
		Dishes:          dishes,
		CreatedAt:       o.CreatedAt,
		Notes:           o.Notes,
	}
}
