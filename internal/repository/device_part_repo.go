package repository

import (
	"context"
	"time"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type DevicePartRepository struct {
	db *gorm.DB
}

func NewDevicePartRepository(db *gorm.DB) *DevicePartRepository {
	return &DevicePartRepository{db: db}
}

type devicePartModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	DeviceID  int64     `gorm:"column:device_id;index"`
	Name      string    `gorm:"column:name"`
	Category  string    `gorm:"column:category"`
	Price     float64   `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (devicePartModel) TableName() string { return "device_parts" }

func toDomainDevicePart(m devicePartModel) *domain.DevicePart {
	return &domain.DevicePart{
		ID:        m.ID,
		DeviceID:  m.DeviceID,
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDevicePartModel(p *domain.DevicePart) devicePartModel {
	return devicePartModel{
		ID:        p.ID,
		DeviceID:  p.DeviceID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *DevicePartRepository) Create(ctx context.Context, p *domain.DevicePart) error {
	m := toDevicePartModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainDevicePart(m)
	return nil
}

func (r *DevicePartRepository) GetByID(ctx context.Context, id int64) (*domain.DevicePart, error) {
	var m devicePartModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDevicePart(m), nil
}

func (r *DevicePartRepository) List(ctx context.Context) ([]domain.DevicePart, error) {
	var models []devicePartModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.DevicePart, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainDevicePart(m))
	}
	return out, nil
}

// ListByDevice returns the device's catalog in insertion order, which the
// price grouping relies on.
func (r *DevicePartRepository) ListByDevice(ctx context.Context, deviceID int64) ([]domain.DevicePart, error) {
	var models []devicePartModel
	tx := r.db.WithContext(ctx).Where("device_id = ?", deviceID).Order("id ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.DevicePart, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainDevicePart(m))
	}
	return out, nil
}

func (r *DevicePartRepository) Update(ctx context.Context, p *domain.DevicePart) error {
	m := toDevicePartModel(p)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainDevicePart(m)
	return nil
}

func (r *DevicePartRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&devicePartModel{}, id).Error
}
