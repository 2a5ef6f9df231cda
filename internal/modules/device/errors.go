package device

import "errors"

var (
	ErrValidation    = errors.New("type, brand and model are required")
	ErrNotFound      = errors.New("device not found")
	ErrPartNotFound  = errors.New("device part not found")
	ErrInvalidPrice  = errors.New("part price must not be negative")
	ErrPartValidaton = errors.New("part name is required")
	ErrHasServices   = errors.New("device has service records; delete them first or request a cascading delete")
)
