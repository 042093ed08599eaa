package form_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/message"
)

type call struct {
	op      string
	target  string
	content string
}

type board struct {
	mu    sync.Mutex
	calls []call
	marks map[string]bool
}

func newBoard() *board {
	return &board{marks: make(map[string]bool)}
}

func (b *board) Render(target, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{"render", target, content})
}

func (b *board) Clear(target string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{"clear", target, ""})
}

func (b *board) MarkField(field string, invalid bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marks[field] = invalid
}

func (b *board) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *board) Marked(field string) (invalid, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	invalid, ok = b.marks[field]
	return invalid, ok
}

type gate struct {
	states []bool
}

func (g *gate) SetSubmitEnabled(enabled bool) {
	g.states = append(g.states, enabled)
}

func (g *gate) Enabled() bool {
	return len(g.states) > 0 && g.states[len(g.states)-1]
}

type fixture struct {
	session  *form.Session
	provider *form.MapProvider
	board    *board
	clock    *message.ManualClock
	gate     *gate
}

// flush lets every pending render fire.
func (f *fixture) flush() {
	f.clock.Advance(message.DefaultDelay)
}

func newFixture(t *testing.T, values map[string]string, specs []form.FieldSpec, opts ...form.Option) *fixture {
	t.Helper()

	f := &fixture{
		provider: form.NewMapProvider(values),
		board:    newBoard(),
		clock:    message.NewManualClock(),
		gate:     &gate{},
	}
	opts = append([]form.Option{
		form.WithClock(f.clock),
		form.WithControlGate(f.gate),
	}, opts...)

	s, err := form.New(f.provider, f.board, specs, opts...)
	require.NoError(t, err)
	f.session = s
	return f
}

func required(name string) form.FieldSpec {
	return form.FieldSpec{
		Name:  name,
		Rules: []form.Rule{form.Use("required", name+" is required")},
	}
}

type handle struct {
	name, value string
	exempt      bool
}

func (h handle) Name() string  { return h.name }
func (h handle) Value() string { return h.value }
func (h handle) Exempt() bool  { return h.exempt }
