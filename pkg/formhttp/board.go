package formhttp

import (
	"maps"
	"sync"
)

// Board is the server-side picture of one form: rendered message targets,
// field error marks and the submit gate. It implements message.Renderer,
// message.FieldMarker and form.ControlGate, and is safe for concurrent use
// because renders arrive on timer goroutines.
type Board struct {
	mu        sync.Mutex
	messages  map[string]string
	invalid   map[string]bool
	canSubmit bool
	version   uint64
	changed   chan struct{}
}

// Snapshot is a point-in-time copy of a Board.
type Snapshot struct {
	Messages  map[string]string `json:"messages"`
	Invalid   map[string]bool   `json:"invalid"`
	CanSubmit bool              `json:"can_submit"`
	Version   uint64            `json:"version"`
}

func NewBoard() *Board {
	return &Board{
		messages: make(map[string]string),
		invalid:  make(map[string]bool),
		changed:  make(chan struct{}),
	}
}

func (b *Board) Render(target, content string) {
	b.update(func() bool {
		if old, ok := b.messages[target]; ok && old == content {
			return false
		}
		b.messages[target] = content
		return true
	})
}

func (b *Board) Clear(target string) {
	b.update(func() bool {
		if old, ok := b.messages[target]; ok && old == "" {
			return false
		}
		b.messages[target] = ""
		return true
	})
}

func (b *Board) MarkField(field string, invalid bool) {
	b.update(func() bool {
		if old, ok := b.invalid[field]; ok && old == invalid {
			return false
		}
		b.invalid[field] = invalid
		return true
	})
}

func (b *Board) SetSubmitEnabled(enabled bool) {
	b.update(func() bool {
		if b.canSubmit == enabled {
			return false
		}
		b.canSubmit = enabled
		return true
	})
}

// Snapshot copies the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Messages:  maps.Clone(b.messages),
		Invalid:   maps.Clone(b.invalid),
		CanSubmit: b.canSubmit,
		Version:   b.version,
	}
}

// Changed returns a channel closed on the next change after the call.
func (b *Board) Changed() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changed
}

func (b *Board) update(apply func() bool) {
	b.mu.Lock()
	if !apply() {
		b.mu.Unlock()
		return
	}
	b.version++
	close(b.changed)
	b.changed = make(chan struct{})
	b.mu.Unlock()
}
