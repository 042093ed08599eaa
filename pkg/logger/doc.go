// Package logger builds slog loggers with functional options and offers
// attribute helpers that keep key names consistent across the form engine.
//
// New picks a text or JSON handler, applies static attributes and, when
// context extractors are registered, wraps the handler in
// LogHandlerDecorator so that values such as a request ID are added to every
// record logged with a context.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "formserver"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.Debug("field evaluated", logger.Field("email"), logger.Trigger("blur"))
//
// Discard returns a logger that drops everything; it is the default for
// library components that accept an optional logger.
package logger
