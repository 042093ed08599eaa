package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a rule descriptor.
func Rule(descriptor string) slog.Attr {
	return slog.String("rule", descriptor)
}

// Target records a message target.
func Target(target string) slog.Attr {
	return slog.String("target", target)
}

// Trigger records what caused an evaluation (blur, submit, manual).
func Trigger(kind string) slog.Attr {
	return slog.String("trigger", kind)
}

// Session records a form session identifier.
func Session(id string) slog.Attr {
	return slog.String("session_id", id)
}

// Schema records a form schema name.
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}
