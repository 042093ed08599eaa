package message

import (
	"log/slog"
	"time"
)

// DefaultDelay is the coalescing window applied when none is configured.
const DefaultDelay = 100 * time.Millisecond

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelay sets the coalescing window. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d < 0 {
			d = 0
		}
		s.delay = d
	}
}

// WithClock replaces the system clock, typically with a ManualClock in tests.
// Nil clocks are ignored.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithErrorIcon sets markup prepended to every error message.
func WithErrorIcon(markup string) Option {
	return func(s *Scheduler) { s.errorIcon = markup }
}

// WithSuccessIcon sets markup rendered on success. Without it a successful
// report clears the target.
func WithSuccessIcon(markup string) Option {
	return func(s *Scheduler) { s.successIcon = markup }
}

// WithFormatter transforms error messages before rendering, e.g. to translate
// message keys. Nil formatters are ignored.
func WithFormatter(fn func(msg string) string) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.format = fn
		}
	}
}

// WithLogger sets the logger used for debug output. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
