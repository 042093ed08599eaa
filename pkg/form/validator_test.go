package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func signupSpecs() []form.FieldSpec {
	return []form.FieldSpec{
		{
			Name: "email",
			Rules: []form.Rule{
				form.Use("required", "email is required"),
				form.Use("email", "email is malformed"),
			},
		},
		{
			Name:      "confirm",
			MatchedBy: "email",
			Rules: []form.Rule{
				form.Use("required", "confirm your email"),
				form.Use("match(email)", "emails do not match"),
			},
		},
		{
			Name:  "nick",
			Rules: []form.Rule{form.Use("length(3,10)", "3 to 10 characters")},
		},
	}
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	provider := form.NewMapProvider(nil)

	t.Run("nil provider", func(t *testing.T) {
		_, err := form.NewValidator(nil, nil, nil)
		assert.ErrorIs(t, err, form.ErrNilProvider)
	})

	t.Run("empty field name", func(t *testing.T) {
		_, err := form.NewValidator(provider, nil, []form.FieldSpec{{Name: "  "}})
		assert.ErrorIs(t, err, form.ErrEmptyFieldName)
	})

	t.Run("duplicate field", func(t *testing.T) {
		_, err := form.NewValidator(provider, nil, []form.FieldSpec{required("a"), required("a")})
		assert.ErrorIs(t, err, form.ErrDuplicateField)
	})

	t.Run("malformed descriptor", func(t *testing.T) {
		_, err := form.NewValidator(provider, nil, []form.FieldSpec{{
			Name:  "a",
			Rules: []form.Rule{form.Use("length(3", "bad")},
		}})
		assert.ErrorIs(t, err, validator.ErrInvalidDescriptor)
	})

	t.Run("matched by unknown field", func(t *testing.T) {
		_, err := form.NewValidator(provider, nil, []form.FieldSpec{{Name: "a", MatchedBy: "b"}})
		assert.ErrorIs(t, err, form.ErrUnknownField)
	})

	t.Run("matched by itself", func(t *testing.T) {
		_, err := form.NewValidator(provider, nil, []form.FieldSpec{{Name: "a", MatchedBy: "a"}})
		assert.ErrorIs(t, err, form.ErrUnknownField)
	})

	t.Run("keeps declaration order", func(t *testing.T) {
		v, err := form.NewValidator(provider, nil, signupSpecs())
		require.NoError(t, err)
		assert.Equal(t, []string{"email", "confirm", "nick"}, v.Fields())
	})
}

func TestValidator_EvaluateField(t *testing.T) {
	t.Parallel()

	v, err := form.NewValidator(form.NewMapProvider(nil), nil, signupSpecs())
	require.NoError(t, err)

	tests := []struct {
		name    string
		field   string
		value   string
		wantMsg string
		wantOK  bool
	}{
		{"first failing rule wins", "email", "", "email is required", false},
		{"second rule fails", "email", "nope", "email is malformed", false},
		{"all rules pass", "email", "a@b.co", "", true},
		{"too short", "nick", "ab", "3 to 10 characters", false},
		{"lower bound", "nick", "abc", "", true},
		{"upper bound", "nick", "abcdefghij", "", true},
		{"too long", "nick", "abcdefghijk", "3 to 10 characters", false},
		{"undeclared field passes", "other", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := v.EvaluateField(tt.field, tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		msg1, ok1 := v.EvaluateField("email", "nope")
		msg2, ok2 := v.EvaluateField("email", "nope")
		assert.Equal(t, msg1, msg2)
		assert.Equal(t, ok1, ok2)
	})
}

func TestValidator_RuleResolution(t *testing.T) {
	t.Parallel()

	t.Run("unresolved rule is skipped", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, []form.FieldSpec{{
			Name:  "code",
			Rules: []form.Rule{form.Use("no-such-rule", "never")},
		}})
		require.NoError(t, err)

		_, ok := v.EvaluateField("code", "")
		assert.True(t, ok)
	})

	t.Run("instance rule shadows built-in", func(t *testing.T) {
		rules := validator.NewRegistry(map[string]validator.Func{
			"required": func(_ validator.Context, value string, _ ...string) bool {
				return value == "yes"
			},
		})
		v, err := form.NewValidator(form.NewMapProvider(nil), nil,
			[]form.FieldSpec{{Name: "terms", Rules: []form.Rule{form.Use("required", "accept the terms")}}},
			form.WithRules(rules),
		)
		require.NoError(t, err)

		msg, ok := v.EvaluateField("terms", "no")
		assert.False(t, ok)
		assert.Equal(t, "accept the terms", msg)

		_, ok = v.EvaluateField("terms", "yes")
		assert.True(t, ok)
	})

	t.Run("instance rule with arguments", func(t *testing.T) {
		rules := validator.NewRegistry(nil)
		rules.MustRegister("prefix", func(_ validator.Context, value string, args ...string) bool {
			return len(args) == 1 && len(value) >= len(args[0]) && value[:len(args[0])] == args[0]
		})
		v, err := form.NewValidator(form.NewMapProvider(nil), nil,
			[]form.FieldSpec{{Name: "sku", Rules: []form.Rule{form.Use("prefix(SKU-)", "")}}},
			form.WithRules(rules),
		)
		require.NoError(t, err)

		msg, ok := v.EvaluateField("sku", "ABC")
		assert.False(t, ok)
		assert.Equal(t, form.DefaultInvalidMessage, msg)

		_, ok = v.EvaluateField("sku", "SKU-1")
		assert.True(t, ok)
	})

	t.Run("inline rule runs in order", func(t *testing.T) {
		calls := 0
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, []form.FieldSpec{{
			Name: "user",
			Rules: []form.Rule{
				form.Inline("not-admin", func(_ validator.Context, value string) (string, bool) {
					calls++
					return "reserved name", value != "admin"
				}),
				form.Use("required", "user is required"),
			},
		}})
		require.NoError(t, err)

		msg, ok := v.EvaluateField("user", "admin")
		assert.False(t, ok)
		assert.Equal(t, "reserved name", msg)
		assert.Equal(t, 1, calls)

		msg, ok = v.EvaluateField("user", "")
		assert.False(t, ok)
		assert.Equal(t, "user is required", msg)
	})
}

func TestValidator_Check(t *testing.T) {
	t.Parallel()

	t.Run("valid form returns all values", func(t *testing.T) {
		values := map[string]string{"email": "a@b.co", "confirm": "a@b.co", "nick": "gopher", "extra": "x"}
		v, err := form.NewValidator(form.NewMapProvider(values), nil, signupSpecs())
		require.NoError(t, err)

		got, err := v.Check(false)
		require.NoError(t, err)
		assert.Equal(t, values, got)
		assert.True(t, v.AggregateValid())
	})

	t.Run("collects every failure", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(map[string]string{"nick": "x"}), nil, signupSpecs())
		require.NoError(t, err)

		got, err := v.Check(false)
		assert.Nil(t, got)
		errs := validator.ExtractValidationErrors(err)
		require.NotNil(t, errs)
		assert.Equal(t, []string{"email", "confirm", "nick"}, errs.Fields())
		assert.Equal(t, "email is required", errs.Get("email"))
		assert.Equal(t, form.StateInvalid, v.Cache().Get("email").State)
		assert.False(t, v.AggregateValid())
	})

	t.Run("stop on error", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, signupSpecs(), form.WithStopOnError(true))
		require.NoError(t, err)

		_, err = v.Check(false)
		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"email"}, errs.Fields())
		assert.Equal(t, form.StateUnknown, v.Cache().Get("nick").State)
	})

	t.Run("missing fields evaluate as empty", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, []form.FieldSpec{required("a")})
		require.NoError(t, err)

		_, err = v.Check(false)
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("allow missing skips absent fields", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil,
			[]form.FieldSpec{required("a")},
			form.WithAllowMissing(true),
		)
		require.NoError(t, err)

		_, err = v.Check(false)
		require.NoError(t, err)
		assert.Equal(t, form.StateUnknown, v.Cache().Get("a").State)
	})

	t.Run("exempt fields are skipped", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"a": "", "b": "ok"})
		p.SetExempt("a", true)
		v, err := form.NewValidator(p, nil, []form.FieldSpec{required("a"), required("b")})
		require.NoError(t, err)

		got, err := v.Check(false)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"b": "ok"}, got)
		assert.False(t, v.AggregateValid())
	})
}

func TestValidator_CheckField(t *testing.T) {
	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, signupSpecs())
		require.NoError(t, err)

		_, err = v.CheckField(form.ByName("missing"), true)
		assert.ErrorIs(t, err, form.ErrUnknownField)
	})

	t.Run("returns only the checked value", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "a@b.co", "nick": "gopher"})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		got, err := v.CheckField(form.ByName("nick"), true)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"nick": "gopher"}, got)
		assert.Equal(t, form.Entry{State: form.StateValid, Value: "gopher"}, v.Cache().Get("nick"))
		assert.Equal(t, form.StateUnknown, v.Cache().Get("email").State)
	})

	t.Run("by handle uses the handle value", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"nick": "x"})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		got, err := v.CheckField(form.ByHandle(handle{name: "nick", value: "gopher"}), true)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"nick": "gopher"}, got)
	})

	t.Run("exempt handle is skipped", func(t *testing.T) {
		v, err := form.NewValidator(form.NewMapProvider(nil), nil, signupSpecs())
		require.NoError(t, err)

		got, err := v.CheckField(form.ByHandle(handle{name: "nick", exempt: true}), true)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, form.StateUnknown, v.Cache().Get("nick").State)
	})

	t.Run("callbacks", func(t *testing.T) {
		var valid, invalid []string
		spec := form.FieldSpec{
			Name:      "nick",
			Rules:     []form.Rule{form.Use("length(3,10)", "too short")},
			OnValid:   func(value string) { valid = append(valid, value) },
			OnInvalid: func(msg string) { invalid = append(invalid, msg) },
		}
		p := form.NewMapProvider(map[string]string{"nick": "ab"})
		v, err := form.NewValidator(p, nil, []form.FieldSpec{spec})
		require.NoError(t, err)

		_, _ = v.CheckField(form.ByName("nick"), true)
		p.Set("nick", "abc")
		_, _ = v.CheckField(form.ByName("nick"), true)

		assert.Equal(t, []string{"too short"}, invalid)
		assert.Equal(t, []string{"abc"}, valid)
	})
}

func TestValidator_MatchedByCascade(t *testing.T) {
	t.Parallel()

	t.Run("changing the source invalidates the confirm field", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "a@b.co", "confirm": "a@b.co"})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		_, err = v.CheckField(form.ByName("confirm"), true)
		require.NoError(t, err)
		assert.Equal(t, form.StateValid, v.Cache().Get("confirm").State)

		p.Set("email", "x@b.co")
		got, err := v.CheckField(form.ByName("email"), true)
		require.NoError(t, err, "dependent failures do not fail the source check")
		assert.Equal(t, map[string]string{"email": "x@b.co"}, got)
		assert.Equal(t, form.StateInvalid, v.Cache().Get("confirm").State)

		p.Set("confirm", "x@b.co")
		_, err = v.CheckField(form.ByName("confirm"), true)
		require.NoError(t, err)
		assert.Equal(t, form.StateValid, v.Cache().Get("confirm").State)
	})

	t.Run("empty dependent is not re-checked", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "a@b.co", "confirm": ""})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		_, err = v.CheckField(form.ByName("email"), true)
		require.NoError(t, err)
		assert.Equal(t, form.StateUnknown, v.Cache().Get("confirm").State)
	})

	t.Run("failing source does not cascade", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "bad", "confirm": "bad"})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		_, err = v.CheckField(form.ByName("email"), true)
		require.Error(t, err)
		assert.Equal(t, form.StateUnknown, v.Cache().Get("confirm").State)
	})

	t.Run("stop on error still cascades from a passing field", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "a@b.co", "confirm": "c@d.co", "nick": "x"})
		v, err := form.NewValidator(p, nil, signupSpecs(), form.WithStopOnError(true))
		require.NoError(t, err)

		_, err = v.Check(false)
		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"confirm"}, errs.Fields())
		assert.Equal(t, form.StateValid, v.Cache().Get("email").State)
		assert.Equal(t, form.StateInvalid, v.Cache().Get("confirm").State)
		assert.Equal(t, form.StateUnknown, v.Cache().Get("nick").State, "scan stops before later fields")
	})

	t.Run("whole form check counts dependents once", func(t *testing.T) {
		p := form.NewMapProvider(map[string]string{"email": "a@b.co", "confirm": "c@d.co", "nick": "gopher"})
		v, err := form.NewValidator(p, nil, signupSpecs())
		require.NoError(t, err)

		_, err = v.Check(false)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "emails do not match", errs.Get("confirm"))
	})
}

func TestValidator_Target(t *testing.T) {
	t.Parallel()

	p := form.NewMapProvider(nil)
	p.SetTarget("nick", "#nick-msg")
	specs := []form.FieldSpec{
		{Name: "email", Target: "#email-msg"},
		{Name: "nick"},
		{Name: "other"},
	}
	v, err := form.NewValidator(p, nil, specs, form.WithDefaultTarget("#all"))
	require.NoError(t, err)

	assert.Equal(t, "#email-msg", v.Target("email"))
	assert.Equal(t, "#nick-msg", v.Target("nick"))
	assert.Equal(t, "#all", v.Target("other"))
}
