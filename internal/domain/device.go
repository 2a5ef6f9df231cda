package domain

import "time"

type Device struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serial_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPartCategory groups parts whose category was left blank.
const DefaultPartCategory = "Diğer"

type DevicePart struct {
	ID        int64     `json:"id"`
	DeviceID  int64     `json:"device_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
