package service

import (
	"time"

	"servistakip/internal/domain"
)

type CreateServiceRequest struct {
	CustomerID   int64  `json:"customer_id" binding:"required"`
	DeviceID     int64  `json:"device_id" binding:"required"`
	TechnicianID int64  `json:"technician_id" binding:"required"`
	Problem      string `json:"problem" binding:"required"`
}

type UpdateServiceRequest struct {
	Status    *string  `json:"status"`
	Problem   *string  `json:"problem"`
	Diagnosis *string  `json:"diagnosis"`
	Solution  *string  `json:"solution"`
	Price     *float64 `json:"price"`
}

type AddPartRequest struct {
	PartID   int64 `json:"part_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

type SetPartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Quote is the parts side of a ticket's pricing. Its total is shown next to,
// never merged with, the separately entered labor price.
type Quote struct {
	Parts      []domain.ServicePart `json:"parts"`
	PartsTotal float64              `json:"parts_total"`
}

// StatusSummary is the public status page's view of one ticket.
type StatusSummary struct {
	ServiceID   int64                `json:"service_id"`
	DeviceBrand string               `json:"device_brand"`
	DeviceModel string               `json:"device_model"`
	Status      domain.ServiceStatus `json:"status"`
	Problem     string               `json:"problem"`
	CreatedAt   time.Time            `json:"created_at"`
}
