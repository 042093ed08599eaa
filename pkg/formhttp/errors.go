package formhttp

import "errors"

var (
	// ErrSchemaNotFound is returned for an unknown form schema name.
	ErrSchemaNotFound = errors.New("form schema not found")

	// ErrInstanceNotFound is returned for an unknown or deleted form instance.
	ErrInstanceNotFound = errors.New("form instance not found")

	// ErrBadRequest is returned when a request body cannot be decoded.
	ErrBadRequest = errors.New("malformed request body")
)
