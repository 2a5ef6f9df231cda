package customer

import (
	"context"
	"errors"
	"strings"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	customers CustomerRepository
	services  ServiceCounter
}

func NewService(customers CustomerRepository, services ServiceCounter) *Service {
	return &Service{
		customers: customers,
		services:  services,
	}
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	phone := domain.NormalizePhone(req.Phone)
	if name == "" || phone == "" {
		return nil, ErrValidation
	}

	c := &domain.Customer{
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
	}

	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := domain.NormalizePhone(*req.Phone)
		if phone == "" {
			return nil, ErrValidation
		}
		c.Phone = phone
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses to remove a customer that still has tickets unless force is
// set, in which case the tickets and their messages go with it.
func (s *Service) Delete(ctx context.Context, id int64, force bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if force {
		return s.customers.DeleteCascade(ctx, id)
	}

	cnt, err := s.services.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasServices
	}

	return s.customers.Delete(ctx, id)
}

// GetByPhone resolves a customer from any formatting of their phone number.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrNotFound
	}

	c, err := s.customers.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
