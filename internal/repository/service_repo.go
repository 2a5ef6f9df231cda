package repository

import (
	"context"
	"errors"
	"time"

	"servistakip/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrInvalidReference is returned when a ticket write points at a customer,
// device or technician row that does not exist.
var ErrInvalidReference = errors.New("referenced row does not exist")

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	CustomerID   int64     `gorm:"column:customer_id;index"`
	DeviceID     int64     `gorm:"column:device_id;index"`
	TechnicianID *int64    `gorm:"column:technician_id"`
	Problem      string    `gorm:"column:problem"`
	Diagnosis    *string   `gorm:"column:diagnosis"`
	Solution     *string   `gorm:"column:solution"`
	Price        *float64  `gorm:"column:price"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	var diagnosis, solution string
	if m.Diagnosis != nil {
		diagnosis = *m.Diagnosis
	}
	if m.Solution != nil {
		solution = *m.Solution
	}

	return &domain.Service{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		DeviceID:     m.DeviceID,
		TechnicianID: m.TechnicianID,
		Problem:      m.Problem,
		Diagnosis:    diagnosis,
		Solution:     solution,
		Price:        m.Price,
		Status:       domain.ServiceStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	var diagnosis, solution *string
	if s.Diagnosis != "" {
		v := s.Diagnosis
		diagnosis = &v
	}
	if s.Solution != "" {
		v := s.Solution
		solution = &v
	}

	return serviceModel{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		DeviceID:     s.DeviceID,
		TechnicianID: s.TechnicianID,
		Problem:      s.Problem,
		Diagnosis:    diagnosis,
		Solution:     solution,
		Price:        s.Price,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if pgErr, ok := tx.Error.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return ErrInvalidReference
		}
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var models []serviceModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// ListByCustomer returns the customer's tickets newest first, the order the
// public status page shows them in.
func (r *ServiceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Service, error) {
	var models []serviceModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// UpdateFields applies a partial update and refreshes updated_at.
func (r *ServiceRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	tx := r.db.WithContext(ctx).Model(&serviceModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&serviceModel{}).Where("customer_id = ?", customerID).Count(&cnt)
	return cnt, tx.Error
}

func (r *ServiceRepository) CountByDevice(ctx context.Context, deviceID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&serviceModel{}).Where("device_id = ?", deviceID).Count(&cnt)
	return cnt, tx.Error
}

// Delete removes a ticket with its messages and quote lines, children first.
func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&serviceMessageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&servicePartModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&serviceModel{}, id).Error
	})
}
