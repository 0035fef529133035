package errors

import "errors"

var (
	ErrNotFound  = errors.New("booking not found")
	ErrInvalidID = errors.New("invalid booking id")
	// ErrDuplicate marks a second booking attempt for a (email, car) pair
	// already holding one.
	ErrDuplicate = errors.New("booking already exists for this user and car")
)
