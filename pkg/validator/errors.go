package validator

import "errors"

var (
	// ErrEmptyRuleName is returned when registering or parsing a rule without a name.
	ErrEmptyRuleName = errors.New("rule name is empty")

	// ErrNilRule is returned when registering a nil rule function.
	ErrNilRule = errors.New("rule function is nil")

	// ErrInvalidDescriptor is returned when a rule descriptor has unbalanced parentheses
	// or trailing characters after the argument list.
	ErrInvalidDescriptor = errors.New("invalid rule descriptor")
)
