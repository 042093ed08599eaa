package form

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/message"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Reporter receives the outcome of every evaluated field that emits messages.
// *message.Scheduler implements it.
type Reporter interface {
	Report(r message.Report) bool
}

// Validator evaluates fields against their rules, keeps the result cache
// and re-checks dependent fields. It is not safe for concurrent use.
type Validator struct {
	fields     []*compiledField
	index      map[string]int
	dependents map[string][]string
	provider   ValueProvider
	reporter   Reporter
	cache      *Cache
	cfg        *config
}

// NewValidator compiles specs and wires the collaborators. reporter may be
// nil, in which case outcomes are only cached.
func NewValidator(provider ValueProvider, reporter Reporter, specs []FieldSpec, opts ...Option) (*Validator, error) {
	return newValidator(provider, reporter, specs, newConfig(opts))
}

func newValidator(provider ValueProvider, reporter Reporter, specs []FieldSpec, cfg *config) (*Validator, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	v := &Validator{
		fields:     make([]*compiledField, 0, len(specs)),
		index:      make(map[string]int, len(specs)),
		dependents: make(map[string][]string),
		provider:   provider,
		reporter:   reporter,
		cache:      NewCache(),
		cfg:        cfg,
	}

	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, dup := v.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		spec.Name = name

		f, err := compileField(spec)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("field %s", name), err)
		}
		v.index[name] = len(v.fields)
		v.fields = append(v.fields, f)
	}

	// One level of dependents per source field, fixed at construction.
	for _, f := range v.fields {
		src := f.spec.MatchedBy
		if src == "" {
			continue
		}
		if _, ok := v.index[src]; !ok || src == f.spec.Name {
			return nil, fmt.Errorf("%w: %s is matched by %q", ErrUnknownField, f.spec.Name, src)
		}
		v.dependents[src] = append(v.dependents[src], f.spec.Name)
	}

	return v, nil
}

// Cache exposes the result cache for inspection.
func (v *Validator) Cache() *Cache {
	return v.cache
}

// Fields returns the declared field names in declaration order.
func (v *Validator) Fields() []string {
	names := make([]string, len(v.fields))
	for i, f := range v.fields {
		names[i] = f.spec.Name
	}
	return names
}

// EvaluateField runs name's rules against value in declared order and
// returns the first failure message. Rule names that resolve to nothing are
// skipped, so a misspelt rule passes; this is logged at warn level.
// Undeclared fields have no rules and always pass.
func (v *Validator) EvaluateField(name, value string) (string, bool) {
	msg, _, ok := v.evaluateRules(name, value)
	return msg, ok
}

func (v *Validator) evaluateRules(name, value string) (msg, rule string, ok bool) {
	i, declared := v.index[name]
	if !declared {
		return "", "", true
	}

	ctx := providerContext{v.provider}
	for _, r := range v.fields[i].rules {
		if r.inline != nil {
			if msg, ok := r.inline(ctx, value); !ok {
				return failureMessage(msg, r.message), r.label, false
			}
			continue
		}

		fn, found := v.cfg.rules.Resolve(r.desc.Name)
		if !found {
			v.cfg.logger.Warn("unresolved rule skipped",
				logger.Field(name),
				logger.Rule(r.label),
			)
			continue
		}
		if !fn(ctx, value, r.desc.Args...) {
			return failureMessage(r.message, ""), r.desc.Name, false
		}
	}
	return "", "", true
}

// Check evaluates every declared field in declaration order. With
// stop-on-error it stops after the first failure. On success it returns the
// provider's full value snapshot; on failure a validator.ValidationErrors.
func (v *Validator) Check(byBlur bool) (map[string]string, error) {
	p := newPass(byBlur, false)
	for _, f := range v.fields {
		if p.evaluated[f.spec.Name] {
			continue
		}
		v.evaluate(p, f, ByName(f.spec.Name), 0)
		if v.cfg.stopOnError && !p.errs.IsEmpty() {
			break
		}
	}

	if !p.errs.IsEmpty() {
		return nil, p.errs
	}
	return v.provider.Values(), nil
}

// CheckField evaluates a single field. On success it returns only that
// field's value. Dependents re-checked as a side effect do not affect the
// result.
func (v *Validator) CheckField(ref FieldRef, byBlur bool) (map[string]string, error) {
	i, ok := v.index[ref.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, ref.Name())
	}

	p := newPass(byBlur, true)
	v.evaluate(p, v.fields[i], ref, 0)
	if !p.errs.IsEmpty() {
		return nil, p.errs
	}
	return p.values, nil
}

// AggregateValid reports whether every declared field is cached as valid
// for the value it currently holds.
func (v *Validator) AggregateValid() bool {
	for _, f := range v.fields {
		if v.Current(f.spec.Name).State != StateValid {
			return false
		}
	}
	return true
}

// Current returns name's cache entry, reading a Valid entry as Unknown when
// the provider no longer holds the value it was checked against.
func (v *Validator) Current(name string) Entry {
	e := v.cache.Get(name)
	if e.State != StateValid {
		return e
	}
	value, present, exempt := v.resolve(ByName(name))
	if exempt || (!present && v.cfg.allowMissing) || value != e.Value {
		return Entry{}
	}
	return e
}

// Forget drops name's cached outcome after a change that was not checked.
func (v *Validator) Forget(name string) {
	v.cache.forget(name)
}

// Target returns the message target for a declared field.
func (v *Validator) Target(name string) string {
	if i, ok := v.index[name]; ok && v.fields[i].spec.Target != "" {
		return v.fields[i].spec.Target
	}
	if tp, ok := v.provider.(TargetProvider); ok {
		if t := tp.Target(name); t != "" {
			return t
		}
	}
	return v.cfg.defaultTarget
}

type pass struct {
	byBlur    bool
	single    bool
	evaluated map[string]bool
	values    map[string]string
	errs      validator.ValidationErrors
}

func newPass(byBlur, single bool) *pass {
	return &pass{
		byBlur:    byBlur,
		single:    single,
		evaluated: make(map[string]bool),
		values:    make(map[string]string),
	}
}

func (v *Validator) evaluate(p *pass, f *compiledField, ref FieldRef, depth int) {
	name := f.spec.Name
	p.evaluated[name] = true

	value, present, exempt := v.resolve(ref)
	if exempt {
		return
	}
	if !present {
		if v.cfg.allowMissing {
			return
		}
		value = ""
	}

	msg, rule, ok := v.evaluateRules(name, value)
	if ok {
		v.cache.setValid(name, value)
		p.values[name] = value
	} else {
		v.cache.setInvalid(name)
		p.errs.Add(validator.ValidationError{Field: name, Rule: rule, Message: msg})
	}

	trigger := message.TriggerSubmit
	if p.byBlur {
		trigger = message.TriggerBlur
	}
	if v.reporter != nil && !f.spec.ManualMessage {
		v.reporter.Report(message.Report{
			Target:    v.Target(name),
			Field:     name,
			Message:   msg,
			Trigger:   trigger,
			Exclusive: v.cfg.stopOnError,
		})
	}

	v.cfg.logger.Debug("field evaluated",
		logger.Field(name),
		logger.Trigger(trigger.String()),
		slog.Bool("valid", ok),
		slog.Int("depth", depth),
	)

	if ok {
		if depth == 0 {
			v.cascade(p, name)
		}
		if f.spec.OnValid != nil {
			f.spec.OnValid(value)
		}
		return
	}
	if f.spec.OnInvalid != nil {
		f.spec.OnInvalid(msg)
	}
}

// cascade re-checks fields that declared name as their MatchedBy source and
// already hold a value. In a single-field check the re-check runs in its own
// pass with the blur-check trigger and its outcome is not returned to the
// caller; in a whole-form check it counts towards the result.
func (v *Validator) cascade(p *pass, name string) {
	for _, dep := range v.dependents[name] {
		if p.evaluated[dep] {
			continue
		}
		if val, present := v.provider.Value(dep); !present || val == "" {
			continue
		}

		cp := p
		if p.single {
			cp = &pass{
				byBlur:    v.cfg.blurCheck,
				single:    true,
				evaluated: p.evaluated,
				values:    make(map[string]string),
			}
		}
		v.evaluate(cp, v.fields[v.index[dep]], ByName(dep), 1)
	}
}

func (v *Validator) resolve(ref FieldRef) (value string, present, exempt bool) {
	if ref.handle != nil {
		return ref.handle.Value(), true, ref.handle.Exempt()
	}
	if v.provider.Exempt(ref.name) {
		return "", false, true
	}
	value, present = v.provider.Value(ref.name)
	return value, present, false
}

func failureMessage(primary, fallback string) string {
	switch {
	case primary != "":
		return primary
	case fallback != "":
		return fallback
	default:
		return DefaultInvalidMessage
	}
}

// providerContext lets rules read sibling fields. Exempt fields read as "".
type providerContext struct {
	p ValueProvider
}

func (c providerContext) Value(field string) string {
	if c.p.Exempt(field) {
		return ""
	}
	v, _ := c.p.Value(field)
	return v
}
