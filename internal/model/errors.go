package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrAdminLimit is returned when the admin table is already at capacity.
	ErrAdminLimit = errors.New("admin limit reached")
)
