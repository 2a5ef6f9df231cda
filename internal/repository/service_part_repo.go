package repository

import (
	"context"
	"time"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type ServicePartRepository struct {
	db *gorm.DB
}

func NewServicePartRepository(db *gorm.DB) *ServicePartRepository {
	return &ServicePartRepository{db: db}
}

type servicePartModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ServiceID int64     `gorm:"column:service_id;index"`
	PartID    int64     `gorm:"column:part_id"`
	Quantity  int       `gorm:"column:quantity"`
	Price     float64   `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (servicePartModel) TableName() string { return "service_parts" }

func toDomainServicePart(m servicePartModel) *domain.ServicePart {
	return &domain.ServicePart{
		ID:        m.ID,
		ServiceID: m.ServiceID,
		PartID:    m.PartID,
		Quantity:  m.Quantity,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ServicePartRepository) Create(ctx context.Context, sp *domain.ServicePart) error {
	m := servicePartModel{
		ServiceID: sp.ServiceID,
		PartID:    sp.PartID,
		Quantity:  sp.Quantity,
		Price:     sp.Price,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*sp = *toDomainServicePart(m)
	return nil
}

func (r *ServicePartRepository) Get(ctx context.Context, serviceID, partID int64) (*domain.ServicePart, error) {
	var m servicePartModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ? AND part_id = ?", serviceID, partID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainServicePart(m), nil
}

func (r *ServicePartRepository) ListByService(ctx context.Context, serviceID int64) ([]domain.ServicePart, error) {
	var models []servicePartModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ServicePart, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainServicePart(m))
	}
	return out, nil
}

func (r *ServicePartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	tx := r.db.WithContext(ctx).Model(&servicePartModel{}).Where("id = ?", id).Update("quantity", quantity)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServicePartRepository) Delete(ctx context.Context, serviceID, partID int64) error {
	return r.db.WithContext(ctx).
		Where("service_id = ? AND part_id = ?", serviceID, partID).
		Delete(&servicePartModel{}).Error
}
