package repository

import (
	"context"
	"time"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type ServiceMessageRepository struct {
	db *gorm.DB
}

func NewServiceMessageRepository(db *gorm.DB) *ServiceMessageRepository {
	return &ServiceMessageRepository{db: db}
}

type serviceMessageModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ServiceID      int64     `gorm:"column:service_id;index"`
	UserID         *int64    `gorm:"column:user_id"`
	Message        string    `gorm:"column:message"`
	IsFromCustomer bool      `gorm:"column:is_from_customer"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (serviceMessageModel) TableName() string { return "service_messages" }

func toDomainServiceMessage(m serviceMessageModel) *domain.ServiceMessage {
	return &domain.ServiceMessage{
		ID:             m.ID,
		ServiceID:      m.ServiceID,
		UserID:         m.UserID,
		Message:        m.Message,
		IsFromCustomer: m.IsFromCustomer,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toServiceMessageModel(msg *domain.ServiceMessage) serviceMessageModel {
	return serviceMessageModel{
		ID:             msg.ID,
		ServiceID:      msg.ServiceID,
		UserID:         msg.UserID,
		Message:        msg.Message,
		IsFromCustomer: msg.IsFromCustomer,
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      msg.UpdatedAt,
	}
}

func (r *ServiceMessageRepository) Create(ctx context.Context, msg *domain.ServiceMessage) error {
	m := toServiceMessageModel(msg)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainServiceMessage(m)
	return nil
}

func (r *ServiceMessageRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceMessage, error) {
	var m serviceMessageModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainServiceMessage(m), nil
}

// ListByService returns the full conversation ascending by created_at, the
// only order the conversation is ever rendered in.
func (r *ServiceMessageRepository) ListByService(ctx context.Context, serviceID int64) ([]domain.ServiceMessage, error) {
	var models []serviceMessageModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at ASC, id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ServiceMessage, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainServiceMessage(m))
	}
	return out, nil
}

func (r *ServiceMessageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&serviceMessageModel{}, id).Error
}
