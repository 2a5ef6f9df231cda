package chat

import "errors"

var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrServiceNotFound = errors.New("service record not found")
	ErrMessageNotFound = errors.New("message not found")
)
