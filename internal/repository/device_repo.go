package repository

import (
	"context"
	"time"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

type deviceModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	CustomerID   int64     `gorm:"column:customer_id;index"`
	Type         string    `gorm:"column:type"`
	Brand        string    `gorm:"column:brand"`
	Model        string    `gorm:"column:model"`
	SerialNumber *string   `gorm:"column:serial_number"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (deviceModel) TableName() string { return "devices" }

func toDomainDevice(m deviceModel) *domain.Device {
	var serial string
	if m.SerialNumber != nil {
		serial = *m.SerialNumber
	}

	return &domain.Device{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		Type:         m.Type,
		Brand:        m.Brand,
		Model:        m.Model,
		SerialNumber: serial,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDeviceModel(d *domain.Device) deviceModel {
	var serial *string
	if d.SerialNumber != "" {
		v := d.SerialNumber
		serial = &v
	}

	return deviceModel{
		ID:           d.ID,
		CustomerID:   d.CustomerID,
		Type:         d.Type,
		Brand:        d.Brand,
		Model:        d.Model,
		SerialNumber: serial,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domain.Device) error {
	m := toDeviceModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDevice(m)
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	var m deviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDevice(m), nil
}

func (r *DeviceRepository) List(ctx context.Context) ([]domain.Device, error) {
	var models []deviceModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Device, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainDevice(m))
	}
	return out, nil
}

func (r *DeviceRepository) Update(ctx context.Context, d *domain.Device) error {
	m := toDeviceModel(d)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDevice(m)
	return nil
}

// Delete removes the device and its part catalog. The caller has already
// verified no tickets reference the device.
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", id).Delete(&devicePartModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deviceModel{}, id).Error
	})
}

// DeleteCascade removes the device together with every ticket that references
// it, children first: messages and quote lines, tickets, part catalog, device.
func (r *DeviceRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serviceIDs []int64
		if err := tx.Model(&serviceModel{}).
			Where("device_id = ?", id).
			Pluck("id", &serviceIDs).Error; err != nil {
			return err
		}

		if len(serviceIDs) > 0 {
			if err := tx.Where("service_id IN ?", serviceIDs).Delete(&serviceMessageModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("service_id IN ?", serviceIDs).Delete(&servicePartModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("device_id = ?", id).Delete(&serviceModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("device_id = ?", id).Delete(&devicePartModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deviceModel{}, id).Error
	})
}
