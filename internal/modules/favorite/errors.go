package favorite

import "errors"

var (
	ErrAlreadyFavorited = errors.New("already favorited")
	ErrNotFound         = errors.New("favorite not found")
	ErrUnauthorized     = errors.New("unauthorized")
)
