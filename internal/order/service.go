package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rasoighar/internal/customer"
	"rasoighar/internal/dish"
	"rasoighar/internal/logger"

	"go.uber.org/zap"
)

// DishCatalog is the slice of the dish service the order flow needs.
type DishCatalog interface {
	GetByID(ctx context.Context, id int64) (*dish.Dish, error)
}

// CustomerCatalog resolves customers before an order references them.
type CustomerCatalog interface {
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type Service struct {
	repo      Repository
	dishes    DishCatalog
	customers CustomerCatalog
	publisher Publisher
}

func NewService(repo Repository, dishes DishCatalog, customers CustomerCatalog, publisher Publisher) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		repo:      repo,
		dishes:    dishes,
		customers: customers,
		publisher: publisher,
	}
}

// ItemInput is one requested dish with optional per-ingredient overrides.
type ItemInput struct {
	DishID            int64      `json:"dish_id"`
	RequestedQuantity *float64   `json:"requested_quantity"`
	RequestedUnit     string     `json:"requested_unit"`
	Overrides         []Override `json:"overrides"`
}

type CreateInput struct {
	CustomerID      int64       `json:"customer_id"`
	Dishes          []ItemInput `json:"dishes"`
	PersonCount     *int        `json:"person_count"`
	BookingDate     *string     `json:"booking_date"`
	BookingTime     *string     `json:"booking_time"`
	DeliveryDate    *string     `json:"delivery_date"`
	DeliveryTime    *string     `json:"delivery_time"`
	DeliveryAddress *string     `json:"delivery_address"`
	Notes           *string     `json:"notes"`
}

type UpdateInput struct {
	CustomerID      *int64      `json:"customer_id"`
	Dishes          []ItemInput `json:"dishes"`
	PersonCount     *int        `json:"person_count"`
	BookingDate     *string     `json:"booking_date"`
	BookingTime     *string     `json:"booking_time"`
	DeliveryDate    *string     `json:"delivery_date"`
	DeliveryTime    *string     `json:"delivery_time"`
	DeliveryAddress *string     `json:"delivery_address"`
	Notes           *string     `json:"notes"`
}

// Create validates and builds the whole order, then persists it in one
// transaction. Validation is strict: any invalid item aborts the build
// before anything is written.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Order, error) {
	if in.CustomerID <= 0 {
		return nil, fmt.Errorf("customer_id required: %w", customer.ErrNotFound)
	}
	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if len(in.Dishes) == 0 {
		return nil, ErrNoItems
	}

	items := make([]Item, 0, len(in.Dishes))
	for i, itemIn := range in.Dishes {
		item, err := s.buildItem(ctx, itemIn)
		if err != nil {
			return nil, fmt.Errorf("dish %d: %w", i+1, err)
		}
		items = append(items, *item)
	}

	o := &Order{
		UserID:          userID,
		CustomerID:      in.CustomerID,
		PersonCount:     in.PersonCount,
		BookingDate:     in.BookingDate,
		BookingTime:     in.BookingTime,
		DeliveryDate:    in.DeliveryDate,
		DeliveryTime:    in.DeliveryTime,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
		Items:           items,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.publish(ctx, EventCreated, o.ID, o.CustomerID, userID, len(o.Items))

	return s.repo.GetByID(ctx, o.ID)
}

// buildItem runs one dish through the scaling pipeline: resolve dish,
// check the unit, compute the scale factor, derive the ingredient lines.
func (s *Service) buildItem(ctx context.Context, in ItemInput) (*Item, error) {
	if in.DishID <= 0 {
		return nil, fmt.Errorf("dish_id required: %w", dish.ErrNotFound)
	}
	if in.RequestedQuantity == nil {
		return nil, fmt.Errorf("requested_quantity required: %w", ErrInvalidQuantity)
	}
	if strings.TrimSpace(in.RequestedUnit) == "" {
		return nil, fmt.Errorf("requested_unit required: %w", ErrUnitMismatch)
	}

	d, err := s.dishes.GetByID(ctx, in.DishID)
	if err != nil {
		return nil, err
	}

	// Exact string equality; there is no unit-conversion table.
	if d.BaseUnit != in.RequestedUnit {
		return nil, fmt.Errorf("%w: dish %q expects %q", ErrUnitMismatch, d.Name, d.BaseUnit)
	}

	scale, err := ComputeScale(d.BaseQuantity, *in.RequestedQuantity)
	if err != nil {
		return nil, err
	}

	return &Item{
		DishID:            d.ID,
		DishName:          d.Name,
		RequestedQuantity: *in.RequestedQuantity,
		RequestedUnit:     in.RequestedUnit,
		ScaleFactor:       scale,
		Ingredients:       ScaleRecipe(d.Ingredients, scale, in.Overrides),
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, role string, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != "admin" && o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, userID, role string) ([]Order, error) {
	return s.repo.List(ctx, userID, role == "admin")
}

// Update patches the order header and, when dishes are supplied,
// recomputes and fully replaces the item list. Never an incremental patch.
func (s *Service) Update(ctx context.Context, userID, role string, id int64, in UpdateInput) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != "admin" && existing.UserID != userID {
		return ErrForbidden
	}

	if in.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *in.CustomerID); err != nil {
			return err
		}
	}

	var items []Item
	replaceItems := in.Dishes != nil
	if replaceItems {
		if len(in.Dishes) == 0 {
			return ErrNoItems
		}
		items = make([]Item, 0, len(in.Dishes))
		for i, itemIn := range in.Dishes {
			item, err := s.buildItem(ctx, itemIn)
			if err != nil {
				return fmt.Errorf("dish %d: %w", i+1, err)
			}
			items = append(items, *item)
		}
	}

	patch := HeaderPatch{
		CustomerID:      in.CustomerID,
		PersonCount:     in.PersonCount,
		BookingDate:     in.BookingDate,
		BookingTime:     in.BookingTime,
		DeliveryDate:    in.DeliveryDate,
		DeliveryTime:    in.DeliveryTime,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
	}

	if err := s.repo.Replace(ctx, id, patch, items, replaceItems); err != nil {
		return err
	}

	s.publish(ctx, EventUpdated, id, existing.CustomerID, userID, len(items))
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, role string, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != "admin" && existing.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, EventDeleted, id, existing.CustomerID, userID, 0)
	return nil
}

// Slips loads the order and projects both slips from it.
func (s *Service) Slips(ctx context.Context, userID, role string, id int64) (*IngredientSlip, *OrderSlip, error) {
	o, err := s.Get(ctx, userID, role, id)
	if err != nil {
		return nil, nil, err
	}
	return BuildIngredientSlip(o), BuildOrderSlip(o), nil
}

func (s *Service) publish(ctx context.Context, name string, orderID, customerID int64, userID string, itemCount int) {
	err := s.publisher.Publish(ctx, Event{
		Name:       name,
		OrderID:    orderID,
		CustomerID: customerID,
		UserID:     userID,
		ItemCount:  itemCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("failed to publish order event",
			zap.String("event", name),
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}
