package formhttp

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/locale"
)

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCatalog translates messages into the language negotiated when an
// instance is created.
func WithCatalog(c *locale.Catalog) Option {
	return func(h *Handler) { h.catalog = c }
}

// WithSessionOptions adds options applied to every session before the
// schema's own options.
func WithSessionOptions(opts ...form.Option) Option {
	return func(h *Handler) { h.sessionOpts = append(h.sessionOpts, opts...) }
}

// SubmitFunc receives the values of a form that passed validation. An error
// rejects the submission.
type SubmitFunc func(ctx context.Context, schema string, values map[string]string) error

// WithSubmitHandler sets the callback run after a successful submit.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(h *Handler) { h.onSubmit = fn }
}
