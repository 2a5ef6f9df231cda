package device

import (
	"context"
	"errors"
	"strings"

	"servistakip/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	devices  DeviceRepository
	parts    DevicePartRepository
	services ServiceCounter
}

func NewService(devices DeviceRepository, parts DevicePartRepository, services ServiceCounter) *Service {
	return &Service{
		devices:  devices,
		parts:    parts,
		services: services,
	}
}

func (s *Service) Create(ctx context.Context, req CreateDeviceRequest) (*domain.Device, error) {
	typ := strings.TrimSpace(req.Type)
	brand := strings.TrimSpace(req.Brand)
	model := strings.TrimSpace(req.Model)
	if req.CustomerID <= 0 || typ == "" || brand == "" || model == "" {
		return nil, ErrValidation
	}

	d := &domain.Device{
		CustomerID:   req.CustomerID,
		Type:         typ,
		Brand:        brand,
		Model:        model,
		SerialNumber: strings.TrimSpace(req.SerialNumber),
	}

	if err := s.devices.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	d, err := s.devices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Device, error) {
	return s.devices.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDeviceRequest) (*domain.Device, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			return nil, ErrValidation
		}
		d.Type = strings.TrimSpace(*req.Type)
	}
	if req.Brand != nil {
		if strings.TrimSpace(*req.Brand) == "" {
			return nil, ErrValidation
		}
		d.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		if strings.TrimSpace(*req.Model) == "" {
			return nil, ErrValidation
		}
		d.Model = strings.TrimSpace(*req.Model)
	}
	if req.SerialNumber != nil {
		d.SerialNumber = strings.TrimSpace(*req.SerialNumber)
	}

	if err := s.devices.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete refuses to remove a device that still has tickets unless force is
// set. The part catalog always goes with the device.
func (s *Service) Delete(ctx context.Context, id int64, force bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if force {
		return s.devices.DeleteCascade(ctx, id)
	}

	cnt, err := s.services.CountByDevice(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasServices
	}

	return s.devices.Delete(ctx, id)
}

func (s *Service) CreatePart(ctx context.Context, req CreatePartRequest) (*domain.DevicePart, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPartValidaton
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if _, err := s.GetByID(ctx, req.DeviceID); err != nil {
		return nil, err
	}

	p := &domain.DevicePart{
		DeviceID: req.DeviceID,
		Name:     name,
		Category: strings.TrimSpace(req.Category),
		Price:    *req.Price,
	}

	if err := s.parts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPart(ctx context.Context, id int64) (*domain.DevicePart, error) {
	p, err := s.parts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListParts(ctx context.Context) ([]domain.DevicePart, error) {
	return s.parts.List(ctx)
}

func (s *Service) ListPartsForDevice(ctx context.Context, deviceID int64) ([]domain.DevicePart, error) {
	return s.parts.ListByDevice(ctx, deviceID)
}

func (s *Service) UpdatePart(ctx context.Context, id int64, req UpdatePartRequest) (*domain.DevicePart, error) {
	p, err := s.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrPartValidaton
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = *req.Price
	}

	if err := s.parts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePart(ctx context.Context, id int64) error {
	if _, err := s.GetPart(ctx, id); err != nil {
		return err
	}
	return s.parts.Delete(ctx, id)
}

// GetPricesForDevice groups a device's catalog by category. Categories appear
// in the order they are first encountered; blank categories fall back to the
// default group.
func (s *Service) GetPricesForDevice(ctx context.Context, deviceID int64) ([]PartCategory, error) {
	parts, err := s.parts.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	grouped := make([]PartCategory, 0)
	index := make(map[string]int)

	for _, p := range parts {
		category := p.Category
		if category == "" {
			category = domain.DefaultPartCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(grouped)
			index[category] = i
			grouped = append(grouped, PartCategory{Category: category})
		}

		grouped[i].Parts = append(grouped[i].Parts, AvailablePart{
			ID:       p.ID,
			PartName: p.Name,
			Price:    p.Price,
		})
	}

	return grouped, nil
}
