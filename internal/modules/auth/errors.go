package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email is already in use")
	ErrValidation         = errors.New("invalid registration data")
)
