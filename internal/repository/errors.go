package repository

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"carmarket/internal/domain"
)

// StorageError is a failed round-trip to the store. Err keeps the driver
// error (with a stack) so callers can still match it with errors.Is/As.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: pkgerrors.WithStack(err)}
}

// lookupError turns a missing row into domain.NotFoundError and anything else into a StorageError.
func lookupError(op, resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return storageError(op, err)
}
