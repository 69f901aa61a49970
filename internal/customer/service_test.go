package customer

import (
	"context"
	"errors"
	"testing"
)

type memoryRepository struct {
	nextID     int64
	customers  map[int64]*Customer
	withOrders map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		nextID:     1,
		customers:  make(map[int64]*Customer),
		withOrders: make(map[int64]bool),
	}
}

func (r *memoryRepository) List(context.Context) ([]Customer, error) {
	var out []Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepository) Create(_ context.Context, cust *Customer) error {
	cust.ID = r.nextID
	r.nextID++
	stored := *cust
	r.customers[cust.ID] = &stored
	return nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, name, phone, email, address *string) error {
	c, ok := r.customers[id]
	if !ok {
		return ErrNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if phone != nil {
		c.Phone = phone
	}
	if email != nil {
		c.Email = email
	}
	if address != nil {
		c.Address = address
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryRepository) HasOrders(_ context.Context, id int64) (bool, error) {
	return r.withOrders[id], nil
}

func sp(s string) *string { return &s }

func TestCreate_TrimsOptionalFields(t *testing.T) {
	svc := NewService(newMemoryRepository())

	c, err := svc.Create(context.Background(), " Asha Caterers ", sp(" 9876543210 "), sp("   "), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Name != "Asha Caterers" {
		t.Errorf("name = %q, want trimmed", c.Name)
	}
	if c.Phone == nil || *c.Phone != "9876543210" {
		t.Errorf("phone = %v, want trimmed value", c.Phone)
	}
	// Blank optional collapses to absent.
	if c.Email != nil {
		t.Errorf("blank email must become nil, got %v", *c.Email)
	}

	if _, err := svc.Create(context.Background(), "  ", nil, nil, nil); err == nil {
		t.Errorf("expected error for blank name")
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Ravi", sp("111"), nil, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Update(context.Background(), c.ID, nil, sp("222"), nil, nil); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got := repo.customers[c.ID]
	if got.Name != "Ravi" {
		t.Errorf("nil name must keep current value, got %q", got.Name)
	}
	if got.Phone == nil || *got.Phone != "222" {
		t.Errorf("phone = %v, want 222", got.Phone)
	}

	if err := svc.Update(context.Background(), c.ID, sp("   "), nil, nil, nil); err == nil {
		t.Errorf("expected error for blank name patch")
	}
}

func TestDelete_BlockedWhileOrdersRemain(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Ravi", nil, nil, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	repo.withOrders[c.ID] = true
	if err := svc.Delete(context.Background(), c.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("expected ErrInUse, got %v", err)
	}

	repo.withOrders[c.ID] = false
	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if len(repo.customers) != 0 {
		t.Errorf("customer must be removed")
	}
}
