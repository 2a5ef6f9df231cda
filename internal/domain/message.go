package domain

import "time"

// ServiceMessage is one entry of a ticket's conversation. Messages are
// immutable once created; staff may hard-delete them.
type ServiceMessage struct {
	ID             int64     `json:"id"`
	ServiceID      int64     `json:"service_id"`
	UserID         *int64    `json:"user_id,omitempty"`
	Message        string    `json:"message"`
	IsFromCustomer bool      `json:"is_from_customer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
