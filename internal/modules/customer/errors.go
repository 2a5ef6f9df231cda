package customer

import "errors"

var (
	ErrValidation  = errors.New("name and phone are required")
	ErrNotFound    = errors.New("customer not found")
	ErrHasServices = errors.New("customer has service records; delete them first or request a cascading delete")
)
