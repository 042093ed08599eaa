package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("falls back to built-ins", func(t *testing.T) {
		reg := validator.NewRegistry(nil)
		fn, ok := reg.Resolve("required")
		require.True(t, ok)
		assert.True(t, fn(nil, "x"))
		assert.False(t, fn(nil, "   "))
	})

	t.Run("instance rules shadow built-ins", func(t *testing.T) {
		reg := validator.NewRegistry(map[string]validator.Func{
			"required": func(_ validator.Context, v string, _ ...string) bool { return v == "yes" },
		})
		fn, ok := reg.Resolve("required")
		require.True(t, ok)
		assert.False(t, fn(nil, "x"))
		assert.True(t, fn(nil, "yes"))

		// The catalog itself is untouched.
		builtin, ok := validator.Builtin("required")
		require.True(t, ok)
		assert.True(t, builtin(nil, "x"))
	})

	t.Run("unknown names are not resolved", func(t *testing.T) {
		reg := validator.NewRegistry(nil)
		_, ok := reg.Resolve("no-such-rule")
		assert.False(t, ok)
	})

	t.Run("nil registry resolves built-ins only", func(t *testing.T) {
		var reg *validator.Registry
		_, ok := reg.Resolve("email")
		assert.True(t, ok)
		assert.Nil(t, reg.Names())
	})

	t.Run("registries do not share instance rules", func(t *testing.T) {
		a := validator.NewRegistry(nil)
		b := validator.NewRegistry(nil)
		a.MustRegister("even", func(_ validator.Context, v string, _ ...string) bool { return len(v)%2 == 0 })

		_, ok := a.Resolve("even")
		assert.True(t, ok)
		_, ok = b.Resolve("even")
		assert.False(t, ok)
	})
}

func TestRegistry_Register(t *testing.T) {
	reg := validator.NewRegistry(nil)

	assert.ErrorIs(t, reg.Register(" ", validator.Required), validator.ErrEmptyRuleName)
	assert.ErrorIs(t, reg.Register("x", nil), validator.ErrNilRule)
	assert.Panics(t, func() { reg.MustRegister("", validator.Required) })

	require.NoError(t, reg.Register("b", validator.Required))
	require.NoError(t, reg.Register("a", validator.Digits))
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestBuiltins(t *testing.T) {
	names := validator.Builtins()
	assert.Len(t, names, 16)
	assert.Contains(t, names, "byte-length")
	assert.Contains(t, names, "match")

	for alias, canonical := range map[string]string{
		"IDcard":     "id-number",
		"chinese":    "cjk-text",
		"qq":         "numeric-id",
		"byteLength": "byte-length",
	} {
		_, ok := validator.Builtin(alias)
		assert.True(t, ok, alias)
		assert.Contains(t, names, canonical)
		assert.NotContains(t, names, alias)
	}
}
