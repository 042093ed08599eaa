package form

import (
	"fmt"
	"sync"
)

// Registry keeps sessions addressable by key (a form selector or session
// ID). It is safe for concurrent use; the sessions themselves are not.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Register stores s under key, replacing any previous session.
func (r *Registry) Register(key string, s *Session) {
	r.mu.Lock()
	r.sessions[key] = s
	r.mu.Unlock()
}

func (r *Registry) Get(key string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[key]
	return s, ok
}

func (r *Registry) Remove(key string) {
	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Submit submits the session registered under key.
func (r *Registry) Submit(key string) error {
	s, ok := r.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, key)
	}
	return s.Submit()
}

// SetMsg calls SetMsg on the session registered under key.
func (r *Registry) SetMsg(key, field, msg string) error {
	s, ok := r.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, key)
	}
	return s.SetMsg(field, msg)
}
