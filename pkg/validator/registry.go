package validator

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds instance-level rules layered over the built-in catalog.
// Instance rules shadow built-ins of the same name. The zero value is not
// usable; a nil *Registry resolves built-ins only.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Func
}

// NewRegistry creates an empty registry, optionally seeded with rules.
func NewRegistry(rules map[string]Func) *Registry {
	r := &Registry{rules: make(map[string]Func, len(rules))}
	for name, fn := range rules {
		r.MustRegister(name, fn)
	}
	return r
}

// Register adds or replaces an instance rule.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRuleName
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilRule, name)
	}

	r.mu.Lock()
	r.rules[name] = fn
	r.mu.Unlock()
	return nil
}

// MustRegister works like Register but panics on error.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Resolve returns the rule registered under name, checking instance rules
// before the built-in catalog. The second result is false when nothing
// matches; callers decide what an unresolved rule means.
func (r *Registry) Resolve(name string) (Func, bool) {
	if r != nil {
		r.mu.RLock()
		fn, ok := r.rules[name]
		r.mu.RUnlock()
		if ok {
			return fn, true
		}
	}
	return Builtin(name)
}

// Names lists instance rule names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
