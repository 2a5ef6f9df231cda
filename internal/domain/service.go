package domain

import "time"

type ServiceStatus string

const (
	StatusPending   ServiceStatus = "BEKLEMEDE"
	StatusInReview  ServiceStatus = "INCELEMEDE"
	StatusRepaired  ServiceStatus = "TAMIR_EDILDI"
	StatusDelivered ServiceStatus = "TESLIM_EDILDI"
	StatusCancelled ServiceStatus = "IPTAL"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusRepaired, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions is the allowed adjacency per status: forward progression
// (skips permitted) plus cancellation from any state. A delivered ticket can
// still be voided; only cancelled tickets are final.
var statusTransitions = map[ServiceStatus][]ServiceStatus{
	StatusPending:   {StatusInReview, StatusRepaired, StatusDelivered, StatusCancelled},
	StatusInReview:  {StatusRepaired, StatusDelivered, StatusCancelled},
	StatusRepaired:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCancelled},
	StatusCancelled: {},
}

// CanTransition reports whether a ticket may move from one status to another.
// Setting the same status again is a no-op and always allowed.
func CanTransition(from, to ServiceStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Service struct {
	ID           int64         `json:"id"`
	CustomerID   int64         `json:"customer_id"`
	DeviceID     int64         `json:"device_id"`
	TechnicianID *int64        `json:"technician_id,omitempty"`
	Problem      string        `json:"problem"`
	Diagnosis    string        `json:"diagnosis,omitempty"`
	Solution     string        `json:"solution,omitempty"`
	Price        *float64      `json:"price,omitempty"`
	Status       ServiceStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Customer   *Customer `json:"customer,omitempty"`
	Device     *Device   `json:"device,omitempty"`
	Technician *User     `json:"technician,omitempty"`
}

// ServicePart is one line of a ticket's parts quote. Price is captured at the
// time the part is added so later catalog edits do not rewrite old quotes.
type ServicePart struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id"`
	PartID    int64     `json:"part_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`

	Part *DevicePart `json:"part,omitempty"`
}
