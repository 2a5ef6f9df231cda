package service

import (
	"context"
	"errors"
	"strings"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	services  ServiceRepository
	quote     ServicePartRepository
	customers CustomerReader
	devices   DeviceReader
	parts     PartReader
	users     UserReader
}

func NewService(
	services ServiceRepository,
	quote ServicePartRepository,
	customers CustomerReader,
	devices DeviceReader,
	parts PartReader,
	users UserReader,
) *Service {
	return &Service{
		services:  services,
		quote:     quote,
		customers: customers,
		devices:   devices,
		parts:     parts,
		users:     users,
	}
}

// Create opens a new ticket. All four fields are required; the ticket always
// starts in BEKLEMEDE.
func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	problem := strings.TrimSpace(req.Problem)
	if req.CustomerID <= 0 || req.DeviceID <= 0 || req.TechnicianID <= 0 || problem == "" {
		return nil, ErrValidation
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, asValidation(err)
	}
	if _, err := s.devices.GetByID(ctx, req.DeviceID); err != nil {
		return nil, asValidation(err)
	}
	if _, err := s.users.GetByID(ctx, req.TechnicianID); err != nil {
		return nil, asValidation(err)
	}

	technicianID := req.TechnicianID
	ticket := &domain.Service{
		CustomerID:   req.CustomerID,
		DeviceID:     req.DeviceID,
		TechnicianID: &technicianID,
		Problem:      problem,
		Status:       domain.StatusPending,
	}

	if err := s.services.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.enrich(ctx, ticket)
	return ticket, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	ticket, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.enrich(ctx, ticket)
	return ticket, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	tickets, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		s.enrich(ctx, &tickets[i])
	}
	return tickets, nil
}

// Update applies a partial edit. A status change must pass the transition
// table; everything else is overwritten as given.
func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	current, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := map[string]any{}

	if req.Status != nil {
		next := domain.ServiceStatus(*req.Status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		if !domain.CanTransition(current.Status, next) {
			return nil, ErrInvalidStatusTransition
		}
		fields["status"] = string(next)
	}
	if req.Problem != nil {
		if strings.TrimSpace(*req.Problem) == "" {
			return nil, ErrValidation
		}
		fields["problem"] = strings.TrimSpace(*req.Problem)
	}
	if req.Diagnosis != nil {
		fields["diagnosis"] = strings.TrimSpace(*req.Diagnosis)
	}
	if req.Solution != nil {
		fields["solution"] = strings.TrimSpace(*req.Solution)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		fields["price"] = *req.Price
	}

	if len(fields) > 0 {
		if err := s.services.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the ticket with its conversation and quote.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.services.Delete(ctx, id)
}

// GetStatusByPhone powers the unauthenticated status page: any formatting of
// the customer's phone number resolves to their tickets, newest first. An
// unknown number yields an empty list, not an error.
func (s *Service) GetStatusByPhone(ctx context.Context, phone string) ([]StatusSummary, error) {
	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return []StatusSummary{}, nil
	}

	customer, err := s.customers.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []StatusSummary{}, nil
		}
		return nil, err
	}

	tickets, err := s.services.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	out := make([]StatusSummary, 0, len(tickets))
	for _, t := range tickets {
		summary := StatusSummary{
			ServiceID: t.ID,
			Status:    t.Status,
			Problem:   t.Problem,
			CreatedAt: t.CreatedAt,
		}
		if device, err := s.devices.GetByID(ctx, t.DeviceID); err == nil {
			summary.DeviceBrand = device.Brand
			summary.DeviceModel = device.Model
		}
		out = append(out, summary)
	}
	return out, nil
}

// AddPart puts a catalog part on the ticket's quote, capturing the price at
// the time of adding. Adding the same part again increments its quantity.
func (s *Service) AddPart(ctx context.Context, serviceID int64, req AddPartRequest) (*domain.ServicePart, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	ticket, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	part, err := s.parts.GetByID(ctx, req.PartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	if part.DeviceID != ticket.DeviceID {
		return nil, ErrPartDeviceMismatch
	}

	existing, err := s.quote.Get(ctx, serviceID, req.PartID)
	if err == nil {
		if err := s.quote.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
		existing.Quantity += quantity
		existing.Part = part
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line := &domain.ServicePart{
		ServiceID: serviceID,
		PartID:    req.PartID,
		Quantity:  quantity,
		Price:     part.Price,
	}
	if err := s.quote.Create(ctx, line); err != nil {
		return nil, err
	}
	line.Part = part
	return line, nil
}

func (s *Service) RemovePart(ctx context.Context, serviceID, partID int64) error {
	if _, err := s.quote.Get(ctx, serviceID, partID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteLineNotFound
		}
		return err
	}
	return s.quote.Delete(ctx, serviceID, partID)
}

// SetPartQuantity updates a quote line; a quantity of zero or less removes it.
func (s *Service) SetPartQuantity(ctx context.Context, serviceID, partID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemovePart(ctx, serviceID, partID)
	}

	line, err := s.quote.Get(ctx, serviceID, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteLineNotFound
		}
		return err
	}
	return s.quote.UpdateQuantity(ctx, line.ID, quantity)
}

func (s *Service) GetQuote(ctx context.Context, serviceID int64) (*Quote, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lines, err := s.quote.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if part, err := s.parts.GetByID(ctx, lines[i].PartID); err == nil {
			lines[i].Part = part
		}
	}

	return &Quote{
		Parts:      lines,
		PartsTotal: ComputeTotal(lines),
	}, nil
}

// ComputeTotal sums the quote lines. The ticket's own price field is labor
// and stays out of this figure.
func ComputeTotal(lines []domain.ServicePart) float64 {
	var total float64
	for _, l := range lines {
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += l.Price * float64(qty)
	}
	return total
}

func (s *Service) enrich(ctx context.Context, t *domain.Service) {
	if c, err := s.customers.GetByID(ctx, t.CustomerID); err == nil {
		t.Customer = c
	}
	if d, err := s.devices.GetByID(ctx, t.DeviceID); err == nil {
		t.Device = d
	}
	if t.TechnicianID != nil {
		if u, err := s.users.GetByID(ctx, *t.TechnicianID); err == nil {
			u.PasswordHash = ""
			t.Technician = u
		}
	}
}

func asValidation(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrValidation
	}
	return err
}
