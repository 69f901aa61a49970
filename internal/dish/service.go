package dish

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Dish, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveRecipe returns the dish's recipe lines ordered by ingredient
// name. Pure read.
func (s *Service) ResolveRecipe(ctx context.Context, dishID int64) ([]RecipeLine, error) {
	d, err := s.repo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	return d.Ingredients, nil
}

func (s *Service) Create(ctx context.Context, d *Dish) (*Dish, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.BaseUnit = strings.TrimSpace(d.BaseUnit)
	if d.Name == "" || d.BaseUnit == "" {
		return nil, errors.New("name, base_quantity, base_unit required")
	}
	if d.BaseQuantity <= 0 {
		return nil, errors.New("base_quantity must be positive")
	}
	if err := validateLines(d.Ingredients); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch, lines []RecipeLine) error {
	if patch.BaseQuantity != nil && *patch.BaseQuantity <= 0 {
		return errors.New("base_quantity must be positive")
	}
	if lines != nil {
		if err := validateLines(lines); err != nil {
			return err
		}
	}
	return s.repo.Update(ctx, id, patch, lines)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateLines(lines []RecipeLine) error {
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if line.IngredientID <= 0 {
			return fmt.Errorf("%w: ingredient_id required", ErrBadLine)
		}
		if line.AmountPerBase <= 0 {
			return fmt.Errorf("%w: amount_per_base must be positive", ErrBadLine)
		}
		if strings.TrimSpace(line.Unit) == "" {
			return fmt.Errorf("%w: unit required", ErrBadLine)
		}
		if seen[line.IngredientID] {
			return fmt.Errorf("%w: duplicate ingredient %d", ErrBadLine, line.IngredientID)
		}
		seen[line.IngredientID] = true
	}
	return nil
}
