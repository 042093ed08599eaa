package locale

import "errors"

var (
	// ErrNoCatalogs is returned when no language carries any message.
	ErrNoCatalogs = errors.New("no message catalogs loaded")

	// ErrFailedToParseYAML is returned when a catalog file is not valid YAML
	// or is not shaped as language -> messages.
	ErrFailedToParseYAML = errors.New("failed to parse YAML catalog")

	// ErrInvalidLanguage is returned for language codes that are not BCP 47 tags.
	ErrInvalidLanguage = errors.New("invalid language tag")

	// ErrParsingCancelled is returned when the context is done before loading finishes.
	ErrParsingCancelled = errors.New("catalog parsing cancelled")
)
