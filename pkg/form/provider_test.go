package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestMapProvider(t *testing.T) {
	t.Parallel()

	src := map[string]string{"a": "1"}
	p := form.NewMapProvider(src)
	src["a"] = "changed"

	v, ok := p.Value("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v, "provider keeps its own copy")

	_, ok = p.Value("b")
	assert.False(t, ok)

	p.SetAll(map[string]string{"b": "2", "c": "3"})
	p.SetExempt("c", true)
	assert.True(t, p.Exempt("c"))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, p.Values())

	p.SetExempt("c", false)
	p.Remove("a")
	assert.Equal(t, map[string]string{"b": "2", "c": "3"}, p.Values())

	assert.Empty(t, p.Target("b"))
	p.SetTarget("b", "#b")
	assert.Equal(t, "#b", p.Target("b"))
}

func TestCache(t *testing.T) {
	t.Parallel()

	c := form.NewCache()
	assert.Equal(t, form.Entry{}, c.Get("a"))
	assert.Equal(t, form.StateUnknown, c.Get("a").State)
	assert.Empty(t, c.Snapshot())

	assert.Equal(t, "unknown", form.StateUnknown.String())
	assert.Equal(t, "valid", form.StateValid.String())
	assert.Equal(t, "invalid", form.StateInvalid.String())
}

func TestCache_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	p := form.NewMapProvider(map[string]string{"a": "1"})
	v, err := form.NewValidator(p, nil, []form.FieldSpec{targeted("a")})
	assert.NoError(t, err)
	_, _ = v.CheckField(form.ByName("a"), true)

	snap := v.Cache().Snapshot()
	assert.Equal(t, map[string]form.Entry{"a": {State: form.StateValid, Value: "1"}}, snap)

	delete(snap, "a")
	assert.Equal(t, form.StateValid, v.Cache().Get("a").State)
}
