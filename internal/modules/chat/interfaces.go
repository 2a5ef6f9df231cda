package chat

import (
	"context"

	"servistakip/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.ServiceMessage) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceMessage, error)
	ListByService(ctx context.Context, serviceID int64) ([]domain.ServiceMessage, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Broadcaster interface {
	Broadcast(serviceID int64, event *Event)
}
