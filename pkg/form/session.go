package form

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/message"
)

// Session binds a Validator to one field container. It owns the result
// cache, the message scheduler and the submit gate. Methods must be called
// from one goroutine at a time; renders scheduled by the message scheduler
// may run on timer goroutines.
type Session struct {
	id        string
	validator *Validator
	scheduler *message.Scheduler
	cfg       *config

	submitEnabled bool
	cooling       atomic.Bool
}

// New creates a session over provider, rendering feedback through renderer.
// Fields listed with WithTriggerDefault that already hold a value are
// evaluated before New returns.
func New(provider ValueProvider, renderer message.Renderer, specs []FieldSpec, opts ...Option) (*Session, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	cfg := newConfig(opts)

	schedOpts := []message.Option{
		message.WithDelay(cfg.delay),
		message.WithClock(cfg.clock),
		message.WithErrorIcon(cfg.errorIcon),
		message.WithSuccessIcon(cfg.successIcon),
		message.WithLogger(cfg.logger),
	}
	if cfg.formatter != nil {
		schedOpts = append(schedOpts, message.WithFormatter(cfg.formatter))
	}
	scheduler := message.New(renderer, schedOpts...)

	v, err := newValidator(provider, scheduler, specs, cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        uuid.NewString(),
		validator: v,
		scheduler: scheduler,
		cfg:       cfg,
	}
	s.setGate(false)

	for _, name := range cfg.triggerDefault {
		name = strings.TrimSpace(name)
		if _, declared := v.index[name]; !declared {
			continue
		}
		if val, ok := provider.Value(name); ok && val != "" {
			_, _ = s.CheckField(ByName(name), cfg.blurCheck)
		}
	}

	cfg.logger.Debug("form session created",
		logger.Session(s.id),
		slog.Int("fields", len(v.fields)),
	)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Fields returns the declared field names in declaration order.
func (s *Session) Fields() []string {
	return s.validator.Fields()
}

// State returns the cached outcome of a field. A Valid outcome for a value
// the field no longer holds reads as Unknown.
func (s *Session) State(name string) Entry {
	return s.validator.Current(name)
}

// Valid reports aggregate validity: every declared field cached as valid.
func (s *Session) Valid() bool {
	return s.validator.AggregateValid()
}

// SubmitEnabled reports the current state of the submit gate. Without a
// control gate submission is never gated and this returns true.
func (s *Session) SubmitEnabled() bool {
	return s.cfg.gate == nil || s.submitEnabled
}

// CheckValid validates the whole form as a submit would, without invoking
// submit callbacks.
func (s *Session) CheckValid() (map[string]string, error) {
	values, err := s.validator.Check(false)
	s.refreshGate()
	return values, err
}

// CheckField validates one field. byBlur selects blur semantics for message
// ownership.
func (s *Session) CheckField(ref FieldRef, byBlur bool) (map[string]string, error) {
	values, err := s.validator.CheckField(ref, byBlur)
	s.refreshGate()
	return values, err
}

// Submit validates the whole form and runs the submit callbacks. A nil
// return means submission proceeds. It fails fast with ErrSubmitDisabled
// while the gate is closed, returns ErrInvalid joined with the validation
// errors when a field fails, and ErrVetoed when a callback blocks.
func (s *Session) Submit() error {
	if !s.SubmitEnabled() {
		return ErrSubmitDisabled
	}

	values, err := s.CheckValid()
	if err != nil {
		return errors.Join(ErrInvalid, err)
	}

	if s.cfg.beforeValid != nil && !s.cfg.beforeValid(values) {
		s.cfg.logger.Debug("submit vetoed by before-valid hook", logger.Session(s.id))
		return ErrVetoed
	}
	if s.cfg.valid != nil {
		if err := s.cfg.valid(values); err != nil {
			s.cfg.logger.Debug("submit blocked by valid callback", logger.Session(s.id), logger.Error(err))
			return errors.Join(ErrVetoed, err)
		}
	}
	return nil
}

// SetMsg renders msg for a field or writes straight into a target.
//
// A name starting with "." or "#" is a target selector: msg is rendered
// there and nothing else changes. Otherwise name must be a declared field:
// its cache entry becomes valid with the current value when msg is empty,
// invalid otherwise, and the message is reported with manual trigger, which
// clears target ownership.
func (s *Session) SetMsg(name, msg string) error {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "#") {
		s.scheduler.Report(message.Report{Target: name, Message: msg, Trigger: message.TriggerManual})
		return nil
	}

	v := s.validator
	if _, ok := v.index[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	if msg == "" {
		value := providerContext{v.provider}.Value(name)
		v.cache.setValid(name, value)
	} else {
		v.cache.setInvalid(name)
	}
	s.scheduler.Report(message.Report{
		Target:  v.Target(name),
		Field:   name,
		Message: msg,
		Trigger: message.TriggerManual,
	})
	s.refreshGate()
	return nil
}

// FieldChanged handles a blur/change event. With blur checking off the
// field is not evaluated; its cached outcome is dropped and the gate closes
// until the next check.
func (s *Session) FieldChanged(name string) error {
	if !s.cfg.blurCheck {
		s.validator.Forget(name)
		s.refreshGate()
		return nil
	}
	_, err := s.CheckField(ByName(name), true)
	return err
}

// SubmitRequested handles a submit event. Repeats inside the cooldown
// window return ErrSubmitThrottled without validating.
func (s *Session) SubmitRequested() error {
	if s.cfg.cooldown > 0 {
		if !s.cooling.CompareAndSwap(false, true) {
			return ErrSubmitThrottled
		}
		s.cfg.clock.AfterFunc(s.cfg.cooldown, func() { s.cooling.Store(false) })
	}
	return s.Submit()
}

// ResetRequested handles a reset event; see Reset.
func (s *Session) ResetRequested() {
	s.Reset()
}

// Reset clears the result cache, cancels pending renders, clears every
// target and closes the submit gate again.
func (s *Session) Reset() {
	s.validator.cache.reset()
	s.scheduler.Reset()
	s.setGate(false)
	s.cfg.logger.Debug("form session reset", logger.Session(s.id))
}

func (s *Session) refreshGate() {
	s.setGate(s.validator.AggregateValid())
}

func (s *Session) setGate(enabled bool) {
	if s.cfg.gate == nil {
		return
	}
	s.submitEnabled = enabled
	s.cfg.gate.SetSubmitEnabled(enabled)
}
