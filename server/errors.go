package server

import "errors"

var (
	// ErrPoemRepositoryRequired is returned when a poem repository is not provided.
	ErrPoemRepositoryRequired = errors.New("poem repository required")
)
