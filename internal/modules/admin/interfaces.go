package admin

import (
	"context"

	"servistakip/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
	Delete(ctx context.Context, id int64) error
}
