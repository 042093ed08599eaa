package form

import "errors"

var (
	// ErrSubmitDisabled is returned by Submit while the submit control is gated off.
	ErrSubmitDisabled = errors.New("submit is disabled until every field is valid")

	// ErrSubmitThrottled is returned by SubmitRequested inside the cooldown window.
	ErrSubmitThrottled = errors.New("submit requested too soon after the previous one")

	// ErrInvalid is returned by Submit when at least one field failed validation.
	// The joined error also carries validator.ValidationErrors.
	ErrInvalid = errors.New("form is invalid")

	// ErrVetoed is returned by Submit when the before-valid hook or the valid
	// callback blocked submission.
	ErrVetoed = errors.New("submission vetoed")

	// ErrEmptyFieldName is returned when a field spec has no name.
	ErrEmptyFieldName = errors.New("field name is empty")

	// ErrDuplicateField is returned when two field specs share a name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrUnknownField is returned when a field name is not declared.
	ErrUnknownField = errors.New("unknown field")

	// ErrNilProvider is returned when a session or validator is built without a value provider.
	ErrNilProvider = errors.New("value provider is nil")

	// ErrNilRenderer is returned when a session is built without a message renderer.
	ErrNilRenderer = errors.New("message renderer is nil")

	// ErrSessionNotFound is returned by Registry shortcuts for unknown keys.
	ErrSessionNotFound = errors.New("form session not found")
)
