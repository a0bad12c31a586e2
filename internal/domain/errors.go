package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a lookup matched no row.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is makes every NotFoundError match ErrNotFound regardless of resource.
func (e NotFoundError) Is(target error) bool {
	switch target.(type) {
	case NotFoundError, *NotFoundError:
		return true
	}
	return false
}

var ErrNotFound = NotFoundError{}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
