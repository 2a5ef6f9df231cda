package device

type CreateDeviceRequest struct {
	CustomerID   int64  `json:"customer_id" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	SerialNumber string `json:"serial_number"`
}

type UpdateDeviceRequest struct {
	Type         *string `json:"type"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
}

type CreatePartRequest struct {
	DeviceID int64    `json:"device_id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Price    *float64 `json:"price" binding:"required"`
}

type UpdatePartRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
}

// AvailablePart is a quotable catalog entry inside a category group.
type AvailablePart struct {
	ID       int64   `json:"id"`
	PartName string  `json:"partName"`
	Price    float64 `json:"price"`
}

// PartCategory preserves the order categories were first encountered in.
type PartCategory struct {
	Category string          `json:"category"`
	Parts    []AvailablePart `json:"parts"`
}
