package poetica

import "errors"

var (
	// ErrPoemNotFound is returned when a poem id is not in the browsed catalog.
	ErrPoemNotFound = errors.New("poem not found")
)
