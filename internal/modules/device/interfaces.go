package device

import (
	"context"

	"servistakip/internal/domain"
)

type DeviceRepository interface {
	Create(ctx context.Context, d *domain.Device) error
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
	List(ctx context.Context) ([]domain.Device, error)
	Update(ctx context.Context, d *domain.Device) error
	Delete(ctx context.Context, id int64) error
	DeleteCascade(ctx context.Context, id int64) error
}

type DevicePartRepository interface {
	Create(ctx context.Context, p *domain.DevicePart) error
	GetByID(ctx context.Context, id int64) (*domain.DevicePart, error)
	List(ctx context.Context) ([]domain.DevicePart, error)
	ListByDevice(ctx context.Context, deviceID int64) ([]domain.DevicePart, error)
	Update(ctx context.Context, p *domain.DevicePart) error
	Delete(ctx context.Context, id int64) error
}

type ServiceCounter interface {
	CountByDevice(ctx context.Context, deviceID int64) (int64, error)
}
