package order

import (
	"context"
	"errors"
	"testing"

	"rasoighar/internal/customer"
	"rasoighar/internal/dish"
)

// ───────────────────────── fakes ─────────────────────────

type memoryRepository struct {
	nextID int64
	orders map[int64]*Order
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, orders: make(map[int64]*Order)}
}

func (r *memoryRepository) Insert(_ context.Context, o *Order) error {
	o.ID = r.nextID
	r.nextID++
	stored := *o
	r.orders[o.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context, userID string, includeAll bool) ([]Order, error) {
	var out []Order
	for _, o := range r.orders {
		if includeAll || o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memoryRepository) Replace(_ context.Context, id int64, patch HeaderPatch, items []Item, replaceItems bool) error {
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if patch.CustomerID != nil {
		o.CustomerID = *patch.CustomerID
	}
	if patch.Notes != nil {
		o.Notes = patch.Notes
	}
	if replaceItems {
		o.Items = items
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeDishCatalog struct {
	dishes map[int64]*dish.Dish
}

func (f *fakeDishCatalog) GetByID(_ context.Context, id int64) (*dish.Dish, error) {
	d, ok := f.dishes[id]
	if !ok {
		return nil, dish.ErrNotFound
	}
	return d, nil
}

type fakeCustomerCatalog struct {
	ids map[int64]bool
}

func (f *fakeCustomerCatalog) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	if !f.ids[id] {
		return nil, customer.ErrNotFound
	}
	return &customer.Customer{ID: id, Name: "Customer"}, nil
}

type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return nil
}

func floatptr(f float64) *float64 { return &f }

func fixtureService() (*Service, *memoryRepository, *recordingPublisher) {
	repo := newMemoryRepository()
	dishes := &fakeDishCatalog{dishes: map[int64]*dish.Dish{
		10: {
			ID:           10,
			Name:         "Jeera Rice",
			BaseQuantity: 1,
			BaseUnit:     "kg",
			Ingredients: []dish.RecipeLine{
				{IngredientID: 1, IngredientName: "Rice", AmountPerBase: 1, Unit: "kg"},
				{IngredientID: 2, IngredientName: "Water", AmountPerBase: 1.5, Unit: "litre"},
				{IngredientID: 3, IngredientName: "Salt", AmountPerBase: 10, Unit: "g"},
			},
		},
	}}
	customers := &fakeCustomerCatalog{ids: map[int64]bool{5: true}}
	publisher := &recordingPublisher{}
	return NewService(repo, dishes, customers, publisher), repo, publisher
}

// ───────────────────────── tests ─────────────────────────

func TestCreate_BuildsScaledItems(t *testing.T) {
	svc, repo, publisher := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes: []ItemInput{
			{DishID: 10, RequestedQuantity: floatptr(2), RequestedUnit: "kg"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(o.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(o.Items))
	}
	item := o.Items[0]
	if item.ScaleFactor != 2 {
		t.Errorf("scale factor = %v, want 2", item.ScaleFactor)
	}
	if len(item.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredient lines, got %d", len(item.Ingredients))
	}
	if item.Ingredients[1].ScaledAmount != 3 {
		t.Errorf("water line = %+v, want scaled amount 3", item.Ingredients[1])
	}

	if len(repo.orders) != 1 {
		t.Errorf("expected one persisted order, got %d", len(repo.orders))
	}
	if len(publisher.events) != 1 || publisher.events[0].Name != EventCreated {
		t.Errorf("expected one %q event, got %+v", EventCreated, publisher.events)
	}
}

func TestCreate_UnitMismatchAbortsWholeOrder(t *testing.T) {
	svc, repo, publisher := fixtureService()

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes: []ItemInput{
			{DishID: 10, RequestedQuantity: floatptr(2), RequestedUnit: "kg"},
			{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "litre"},
		},
	})
	if !errors.Is(err, ErrUnitMismatch) {
		t.Fatalf("expected ErrUnitMismatch, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Errorf("no order may persist when any item is invalid")
	}
	if len(publisher.events) != 0 {
		t.Errorf("no event may be published for a rejected order")
	}
}

func TestCreate_RejectsUnknownDishAndCustomer(t *testing.T) {
	svc, repo, _ := fixtureService()

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 999,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected customer.ErrNotFound, got %v", err)
	}

	_, err = svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 999, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if !errors.Is(err, dish.ErrNotFound) {
		t.Fatalf("expected dish.ErrNotFound, got %v", err)
	}

	if len(repo.orders) != 0 {
		t.Errorf("rejected orders must not persist")
	}
}

func TestCreate_RejectsEmptyAndInvalidQuantity(t *testing.T) {
	svc, _, _ := fixtureService()

	_, err := svc.Create(context.Background(), "user-1", CreateInput{CustomerID: 5})
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}

	_, err = svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(0), RequestedUnit: "kg"}},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for zero quantity, got %v", err)
	}

	_, err = svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedUnit: "kg"}},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for missing quantity, got %v", err)
	}
}

func TestCreate_AppliesOverrides(t *testing.T) {
	svc, _, _ := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes: []ItemInput{
			{
				DishID:            10,
				RequestedQuantity: floatptr(2),
				RequestedUnit:     "kg",
				Overrides: []Override{
					{IngredientID: 2, ScaledAmount: floatptr(5)},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	lines := o.Items[0].Ingredients
	if len(lines) != 1 {
		t.Fatalf("overrides replace the line set, got %+v", lines)
	}
	if lines[0].IngredientID != 2 || lines[0].ScaledAmount != 5 || lines[0].Unit != "litre" {
		t.Errorf("unexpected override line: %+v", lines[0])
	}
}

func TestGet_OwnershipEnforced(t *testing.T) {
	svc, _, _ := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", "user", o.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another user, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-2", "admin", o.ID); err != nil {
		t.Errorf("admin must see any order, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", "user", o.ID); err != nil {
		t.Errorf("owner must see their order, got %v", err)
	}
}

func TestUpdate_ReplacesItemsAtomically(t *testing.T) {
	svc, repo, publisher := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Update(context.Background(), "user-1", "user", o.ID, UpdateInput{
		Dishes: []ItemInput{{DishID: 10, RequestedQuantity: floatptr(3), RequestedUnit: "kg"}},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated := repo.orders[o.ID]
	if len(updated.Items) != 1 || updated.Items[0].ScaleFactor != 3 {
		t.Errorf("expected a single recomputed item with scale 3, got %+v", updated.Items)
	}
	if len(publisher.events) != 2 || publisher.events[1].Name != EventUpdated {
		t.Errorf("expected create + update events, got %+v", publisher.events)
	}

	// Empty replacement set is rejected; nil means keep current items.
	err = svc.Update(context.Background(), "user-1", "user", o.ID, UpdateInput{Dishes: []ItemInput{}})
	if !errors.Is(err, ErrNoItems) {
		t.Errorf("expected ErrNoItems for empty item list, got %v", err)
	}

	notes := "deliver early"
	if err := svc.Update(context.Background(), "user-1", "user", o.ID, UpdateInput{Notes: &notes}); err != nil {
		t.Errorf("header-only update failed: %v", err)
	}
	if len(repo.orders[o.ID].Items) != 1 {
		t.Errorf("header-only update must keep items")
	}
}

func TestUpdate_ForbiddenForNonOwner(t *testing.T) {
	svc, _, _ := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Update(context.Background(), "user-2", "user", o.ID, UpdateInput{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestDelete_PublishesEvent(t *testing.T) {
	svc, repo, publisher := fixtureService()

	o, err := svc.Create(context.Background(), "user-1", CreateInput{
		CustomerID: 5,
		Dishes:     []ItemInput{{DishID: 10, RequestedQuantity: floatptr(1), RequestedUnit: "kg"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-2", "user", o.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", "user", o.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(repo.orders) != 0 {
		t.Errorf("order must be removed")
	}
	if publisher.events[len(publisher.events)-1].Name != EventDeleted {
		t.Errorf("expected %q event, got %+v", EventDeleted, publisher.events)
	}
}
