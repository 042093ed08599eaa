package form

import (
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// DefaultInvalidMessage is reported when a failing rule has no message configured.
const DefaultInvalidMessage = "invalid value"

// InlineFunc is a rule bound directly to a field instead of looked up by name.
// It returns ok=false and a message to fail the field.
type InlineFunc func(ctx validator.Context, value string) (message string, ok bool)

// Rule is one entry of a field's ordered rule list.
type Rule struct {
	// Descriptor names the rule and its arguments, e.g. "length(3,10)".
	// For inline rules it is only a label used in logs and errors.
	Descriptor string
	// Message is reported when the rule fails.
	Message string
	// Inline, when set, is evaluated instead of a registry lookup.
	Inline InlineFunc
}

// Use declares a registry rule with its failure message.
func Use(descriptor, message string) Rule {
	return Rule{Descriptor: descriptor, Message: message}
}

// Inline declares a field-local rule.
func Inline(label string, fn InlineFunc) Rule {
	return Rule{Descriptor: label, Inline: fn}
}

// FieldSpec is the static validation config of one field. Rules run in
// declared order and stop at the first failure, so order is part of the
// contract.
type FieldSpec struct {
	Name  string
	Rules []Rule

	// ManualMessage stops the validator from reporting this field's outcome;
	// the caller renders feedback through Session.SetMsg instead.
	ManualMessage bool

	// MatchedBy names the field this one mirrors (a "confirm" field names its
	// source). When the source passes a single-field check, this field is
	// re-checked if it already holds a value.
	MatchedBy string

	// Target overrides the message target for this field.
	Target string

	OnValid   func(value string)
	OnInvalid func(message string)
}

// Handle is an opaque reference to one concrete input, for callers that
// hold the element rather than its name (e.g. one of several inputs sharing
// a name).
type Handle interface {
	Name() string
	Value() string
	Exempt() bool
}

// FieldRef identifies a field either by name or by handle. It is resolved
// once, at the API boundary, into a name and a current value.
type FieldRef struct {
	name   string
	handle Handle
}

// ByName refers to a field by its declared name; its value comes from the
// session's ValueProvider.
func ByName(name string) FieldRef {
	return FieldRef{name: name}
}

// ByHandle refers to a concrete input; its value comes from the handle.
func ByHandle(h Handle) FieldRef {
	return FieldRef{name: h.Name(), handle: h}
}

func (r FieldRef) Name() string {
	return r.name
}

type compiledRule struct {
	label   string
	desc    validator.Descriptor
	message string
	inline  InlineFunc
}

type compiledField struct {
	spec  FieldSpec
	rules []compiledRule
}

func compileField(spec FieldSpec) (*compiledField, error) {
	f := &compiledField{spec: spec, rules: make([]compiledRule, 0, len(spec.Rules))}
	for _, r := range spec.Rules {
		cr := compiledRule{label: r.Descriptor, message: r.Message, inline: r.Inline}
		if r.Inline == nil {
			desc, err := validator.ParseDescriptor(r.Descriptor)
			if err != nil {
				return nil, err
			}
			cr.desc = desc
		}
		f.rules = append(f.rules, cr)
	}
	return f, nil
}
