package car

import "errors"

var (
	ErrNotFound     = errors.New("car not found")
	ErrUnauthorized = errors.New("unauthorized")
)
