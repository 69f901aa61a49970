package category

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

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string) (*Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New("name required")
	}
	return s.repo.Create(ctx, trimmed)
}

func (s *Service) Rename(ctx context.Context, id int64, name *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return errors.New("name required")
		}
		name = &trimmed
	}
	return s.repo.Rename(ctx, id, name)
}

// Delete refuses to remove a category that still has ingredients.
// Callers must reassign or remove those first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	inUse, err := s.repo.HasIngredients(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}
	return s.repo.Delete(ctx, id)
}
