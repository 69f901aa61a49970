package category

import (
	"context"
	"errors"
	"testing"
)

type memoryRepository struct {
	nextID     int64
	categories map[int64]*Category
	withItems  map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		nextID:     1,
		categories: make(map[int64]*Category),
		withItems:  make(map[int64]bool),
	}
}

func (r *memoryRepository) List(context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, name string) (*Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return nil, ErrDuplicate
		}
	}
	c := &Category{ID: r.nextID, Name: name}
	r.nextID++
	r.categories[c.ID] = c
	return c, nil
}

func (r *memoryRepository) Rename(_ context.Context, id int64, name *string) error {
	c, ok := r.categories[id]
	if !ok {
		return ErrNotFound
	}
	if name != nil {
		c.Name = *name
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memoryRepository) HasIngredients(_ context.Context, id int64) (bool, error) {
	return r.withItems[id], nil
}

func TestCreate_TrimsAndRejectsEmpty(t *testing.T) {
	svc := NewService(newMemoryRepository())

	c, err := svc.Create(context.Background(), "  Spices  ")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Name != "Spices" {
		t.Errorf("name = %q, want trimmed", c.Name)
	}

	if _, err := svc.Create(context.Background(), "   "); err == nil {
		t.Errorf("expected error for blank name")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	svc := NewService(newMemoryRepository())

	if _, err := svc.Create(context.Background(), "Spices"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "Spices"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestDelete_BlockedWhileIngredientsRemain(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Grains")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	repo.withItems[c.ID] = true
	if err := svc.Delete(context.Background(), c.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("expected ErrInUse, got %v", err)
	}
	if _, ok := repo.categories[c.ID]; !ok {
		t.Errorf("category must survive a refused delete")
	}

	repo.withItems[c.ID] = false
	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
}

func TestRename_NilKeepsCurrentName(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Grains")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Rename(context.Background(), c.ID, nil); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if repo.categories[c.ID].Name != "Grains" {
		t.Errorf("nil name must keep the current value")
	}

	name := "  Cereals "
	if err := svc.Rename(context.Background(), c.ID, &name); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if repo.categories[c.ID].Name != "Cereals" {
		t.Errorf("name = %q, want trimmed rename", repo.categories[c.ID].Name)
	}
}
