package repository

import (
	"context"
	"time"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone;index"`
	Email     *string   `gorm:"column:email"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	var email, address string
	if m.Email != nil {
		email = *m.Email
	}
	if m.Address != nil {
		address = *m.Address
	}

	return &domain.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     email,
		Address:   address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	var email, address *string
	if c.Email != "" {
		v := c.Email
		email = &v
	}
	if c.Address != "" {
		v := c.Address
		address = &v
	}

	return customerModel{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     email,
		Address:   address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

// GetByPhone matches against the normalized phone stored on write; callers
// normalize the query the same way before the lookup.
func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).Where("phone = ?", phone).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	var models []customerModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Customer, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&customerModel{}, id).Error
}

// DeleteCascade removes the customer together with every ticket that
// references it. Children go first: messages and quote lines, then the
// tickets, then the customer row.
func (r *CustomerRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var serviceIDs []int64
		if err := tx.Model(&serviceModel{}).
			Where("customer_id = ?", id).
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
			if err := tx.Where("customer_id = ?", id).Delete(&serviceModel{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&customerModel{}, id).Error
	})
}
