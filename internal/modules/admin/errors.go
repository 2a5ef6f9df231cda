package admin

import "errors"

var (
	ErrValidation         = errors.New("name, email and password are required")
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidRole        = errors.New("unknown role")
	ErrLastAdmin          = errors.New("cannot remove the last admin")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)
