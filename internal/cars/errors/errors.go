package errors

import "errors"

var (
	ErrNotFound  = errors.New("car not found")
	ErrInvalidID = errors.New("invalid car id")
)
