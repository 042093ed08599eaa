package form

import (
	"maps"
	"sync"
)

// ValueProvider reads field values from whatever holds the inputs.
// Radio and checkbox groups resolve to the checked value or "".
type ValueProvider interface {
	// Value returns the field's current value and whether the field exists.
	Value(field string) (string, bool)
	// Exempt reports whether the field is disabled or opted out of validation.
	Exempt(field string) bool
	// Values returns every present, non-exempt field.
	Values() map[string]string
}

// TargetProvider is optionally implemented by a ValueProvider that knows a
// per-field message target (the data-msgbox attribute in HTML forms).
type TargetProvider interface {
	Target(field string) string
}

// ControlGate toggles the submit control.
type ControlGate interface {
	SetSubmitEnabled(enabled bool)
}

// MapProvider is an in-memory ValueProvider. It is safe for concurrent use.
type MapProvider struct {
	mu      sync.RWMutex
	values  map[string]string
	exempt  map[string]bool
	targets map[string]string
}

// NewMapProvider creates a provider holding a copy of values.
func NewMapProvider(values map[string]string) *MapProvider {
	p := &MapProvider{
		values:  make(map[string]string, len(values)),
		exempt:  make(map[string]bool),
		targets: make(map[string]string),
	}
	maps.Copy(p.values, values)
	return p
}

func (p *MapProvider) Set(field, value string) {
	p.mu.Lock()
	p.values[field] = value
	p.mu.Unlock()
}

// SetAll merges values into the provider.
func (p *MapProvider) SetAll(values map[string]string) {
	p.mu.Lock()
	maps.Copy(p.values, values)
	p.mu.Unlock()
}

// Remove makes the field absent.
func (p *MapProvider) Remove(field string) {
	p.mu.Lock()
	delete(p.values, field)
	p.mu.Unlock()
}

func (p *MapProvider) SetExempt(field string, exempt bool) {
	p.mu.Lock()
	if exempt {
		p.exempt[field] = true
	} else {
		delete(p.exempt, field)
	}
	p.mu.Unlock()
}

func (p *MapProvider) SetTarget(field, target string) {
	p.mu.Lock()
	p.targets[field] = target
	p.mu.Unlock()
}

func (p *MapProvider) Value(field string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[field]
	return v, ok
}

func (p *MapProvider) Exempt(field string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exempt[field]
}

func (p *MapProvider) Values() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		if !p.exempt[k] {
			out[k] = v
		}
	}
	return out
}

func (p *MapProvider) Target(field string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.targets[field]
}
