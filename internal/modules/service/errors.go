package service

import "errors"

var (
	ErrValidation              = errors.New("customer, device, technician and problem are required")
	ErrNotFound                = errors.New("service record not found")
	ErrInvalidStatus           = errors.New("unknown service status")
	ErrInvalidStatusTransition = errors.New("status transition is not allowed")
	ErrInvalidPrice            = errors.New("price must not be negative")
	ErrPartNotFound            = errors.New("device part not found")
	ErrPartDeviceMismatch      = errors.New("part belongs to a different device")
	ErrQuoteLineNotFound       = errors.New("part is not on this service's quote")
)
