package message

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Trigger tells the scheduler what caused a report.
type Trigger int

const (
	// TriggerSubmit marks reports produced by a whole-form check.
	TriggerSubmit Trigger = iota
	// TriggerBlur marks reports produced by a single-field blur/change check.
	TriggerBlur
	// TriggerManual marks reports written through Session.SetMsg.
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerSubmit:
		return "submit"
	case TriggerBlur:
		return "blur"
	case TriggerManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Renderer writes validation feedback into a message target.
type Renderer interface {
	Render(target, content string)
	Clear(target string)
}

// FieldMarker is optionally implemented by a Renderer that flags the input
// itself (an error class on the element). Marks are applied immediately,
// without the coalescing delay.
type FieldMarker interface {
	MarkField(field string, invalid bool)
}

// Report is one request to show a field's outcome in a target.
type Report struct {
	Target string
	// Field is the reporting field. Empty means a direct write to Target
	// that bypasses ownership.
	Field string
	// Message is the failure message; empty means success.
	Message string
	Trigger Trigger
	// Exclusive is set in stop-on-error mode, where only one field can fail
	// per pass and ownership arbitration is switched off.
	Exclusive bool
}

func (r Report) failed() bool {
	return r.Message != ""
}

type target struct {
	owner    string
	timer    Timer
	gen      uint64
	shown    string
	rendered bool
}

// Scheduler coalesces reports per target. It is safe for concurrent use;
// with the system clock, renders happen on timer goroutines.
type Scheduler struct {
	mu          sync.Mutex
	renderer    Renderer
	clock       Clock
	delay       time.Duration
	errorIcon   string
	successIcon string
	format      func(string) string
	logger      *slog.Logger
	targets     map[string]*target
}

// New creates a Scheduler rendering through r.
func New(r Renderer, opts ...Option) *Scheduler {
	s := &Scheduler{
		renderer: r,
		clock:    SystemClock(),
		delay:    DefaultDelay,
		format:   func(msg string) string { return msg },
		logger:   logger.Discard(),
		targets:  make(map[string]*target),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report schedules r for rendering after the coalescing window, replacing
// any render still pending for the same target. It returns false when the
// report was suppressed because another field owns the target.
func (s *Scheduler) Report(r Report) bool {
	s.mu.Lock()
	t := s.target(r.Target)

	cover := true
	if r.Field != "" {
		if r.Trigger == TriggerSubmit && !r.Exclusive {
			switch {
			case r.failed():
				t.owner = r.Field
			case t.owner != "" && t.owner != r.Field:
				cover = false
			}
		} else {
			t.owner = ""
		}
	}

	if cover {
		s.schedule(r.Target, t, r)
	}
	owner := t.owner
	s.mu.Unlock()

	if marker, ok := s.renderer.(FieldMarker); ok && r.Field != "" {
		marker.MarkField(r.Field, r.failed())
	}

	if !cover {
		s.logger.Debug("message suppressed",
			logger.Target(r.Target),
			logger.Field(r.Field),
			slog.String("owner", owner),
		)
	}
	return cover
}

// schedule must be called with s.mu held.
func (s *Scheduler) schedule(name string, t *target, r Report) {
	content := s.successIcon
	if r.failed() {
		content = s.errorIcon + s.format(r.Message)
	}

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.timer = s.clock.AfterFunc(s.delay, func() {
		s.fire(name, gen, content)
	})

	s.logger.Debug("message scheduled",
		logger.Target(name),
		logger.Field(r.Field),
		logger.Trigger(r.Trigger.String()),
		slog.Bool("failed", r.failed()),
	)
}

func (s *Scheduler) fire(name string, gen uint64, content string) {
	s.mu.Lock()
	t, ok := s.targets[name]
	if !ok || t.gen != gen {
		s.mu.Unlock()
		return
	}
	t.timer = nil
	if t.rendered && t.shown == content {
		s.mu.Unlock()
		return
	}
	t.shown = content
	t.rendered = true
	s.mu.Unlock()

	if content == "" {
		s.renderer.Clear(name)
		return
	}
	s.renderer.Render(name, content)
}

// Reset cancels every pending render, drops ownership and clears every
// target the scheduler has seen.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	names := make([]string, 0, len(s.targets))
	for name, t := range s.targets {
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
		}
		t.gen++
		t.owner = ""
		t.shown = ""
		t.rendered = true
		names = append(names, name)
	}
	s.mu.Unlock()

	for _, name := range names {
		s.renderer.Clear(name)
	}
}

// Pending reports whether a render is waiting for target.
func (s *Scheduler) Pending(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.targets[name]
	return ok && t.timer != nil
}

// Owner returns the field currently owning target, or an empty string.
func (s *Scheduler) Owner(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.targets[name]; ok {
		return t.owner
	}
	return ""
}

// target must be called with s.mu held.
func (s *Scheduler) target(name string) *target {
	t, ok := s.targets[name]
	if !ok {
		t = &target{}
		s.targets[name] = t
	}
	return t
}
