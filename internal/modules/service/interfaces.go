package service

import (
	"context"

	"servistakip/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Service, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type ServicePartRepository interface {
	Create(ctx context.Context, sp *domain.ServicePart) error
	Get(ctx context.Context, serviceID, partID int64) (*domain.ServicePart, error)
	ListByService(ctx context.Context, serviceID int64) ([]domain.ServicePart, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, serviceID, partID int64) error
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
}

type DeviceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
}

type PartReader interface {
	GetByID(ctx context.Context, id int64) (*domain.DevicePart, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
