package customer

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

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, phone, email, address *string) (*Customer, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New("name required")
	}

	cust := &Customer{
		Name:    trimmed,
		Phone:   trimOptional(phone),
		Email:   trimOptional(email),
		Address: trimOptional(address),
	}
	if err := s.repo.Create(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, phone, email, address *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return errors.New("name required")
		}
		name = &trimmed
	}
	return s.repo.Update(ctx, id, name, phone, email, address)
}

// Delete refuses to remove a customer that still has orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	inUse, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}
	return s.repo.Delete(ctx, id)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
