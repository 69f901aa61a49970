package ingredient

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Ingredient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string, categoryID int64) (*Ingredient, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || categoryID <= 0 {
		return nil, errors.New("name and category_id required")
	}
	return s.repo.Create(ctx, trimmed, categoryID)
}

func (s *Service) Update(ctx context.Context, id int64, name *string, categoryID *int64) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return errors.New("name required")
		}
		name = &trimmed
	}
	return s.repo.Update(ctx, id, name, categoryID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
