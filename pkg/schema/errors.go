package schema

import "errors"

var (
	// ErrFailedToParseYAML is returned when a schema document is not valid YAML
	// or contains unknown keys.
	ErrFailedToParseYAML = errors.New("failed to parse YAML form schema")

	// ErrInvalidSchema is returned when a schema parses but cannot describe a form.
	ErrInvalidSchema = errors.New("invalid form schema")

	// ErrDuplicateSchema is returned by LoadDir when two files declare the same form name.
	ErrDuplicateSchema = errors.New("duplicate form schema name")

	// ErrParsingCancelled is returned when the context is done before parsing finishes.
	ErrParsingCancelled = errors.New("schema parsing cancelled")
)
