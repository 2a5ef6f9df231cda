package chat

import (
	"context"
	"errors"
	"strings"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

// Service runs the per-ticket conversation. The same send path serves staff
// in the dashboard and customers on the status page; only the sender flag
// differs. Both sides see an append-only, chronologically ordered thread.
type Service struct {
	messages MessageRepository
	services ServiceReader
	users    UserReader
	hub      Broadcaster
}

func NewService(messages MessageRepository, services ServiceReader, users UserReader, hub Broadcaster) *Service {
	return &Service{
		messages: messages,
		services: services,
		users:    users,
		hub:      hub,
	}
}

// Send appends a message to the ticket's thread. userID is nil for customer
// messages; staff messages carry the author.
func (s *Service) Send(ctx context.Context, serviceID int64, userID *int64, text string, fromCustomer bool) (*domain.ServiceMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	msg := &domain.ServiceMessage{
		ServiceID:      serviceID,
		UserID:         userID,
		Message:        text,
		IsFromCustomer: fromCustomer,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.attachUser(ctx, msg)

	s.hub.Broadcast(serviceID, &Event{
		Type:      EventMessageCreated,
		ServiceID: serviceID,
		Payload:   msg,
	})

	return msg, nil
}

// List returns the full thread oldest first. Polling clients call this
// repeatedly; the result is stable between sends.
func (s *Service) List(ctx context.Context, serviceID int64) ([]domain.ServiceMessage, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	msgs, err := s.messages.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		s.attachUser(ctx, &msgs[i])
	}
	return msgs, nil
}

// Delete removes a single message from the ticket's thread.
func (s *Service) Delete(ctx context.Context, serviceID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.ServiceID != serviceID {
		return ErrMessageNotFound
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		return err
	}

	s.hub.Broadcast(serviceID, &Event{
		Type:      EventMessageDeleted,
		ServiceID: serviceID,
		Payload:   map[string]int64{"message_id": messageID},
	})

	return nil
}

func (s *Service) attachUser(ctx context.Context, m *domain.ServiceMessage) {
	if m.UserID == nil {
		return
	}
	if u, err := s.users.GetByID(ctx, *m.UserID); err == nil {
		u.PasswordHash = ""
		m.User = u
	}
}
