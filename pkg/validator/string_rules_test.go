package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"letter", "a", true},
		{"padded letter", "  a  ", true},
		{"ideograph between ideographic spaces", "\u3000中\u3000", true},
		{"empty", "", false},
		{"ascii whitespace", " \t\n", false},
		{"ideographic space", "\u3000", false},
		{"no-break space", "\u00a0", false},
		{"vertical tab", "\v", false},
		{"mixed blanks", " \u3000 ", false},
		{"byte order mark", "\ufeff", false},
		{"em space", "\u2003", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.Required(nil, tt.value))
		})
	}
}

func TestDigitsAndLetters(t *testing.T) {
	assert.True(t, validator.Digits(nil, "0123"))
	assert.False(t, validator.Digits(nil, "12a"))
	assert.False(t, validator.Digits(nil, ""))

	assert.True(t, validator.Letters(nil, "abcXYZ"))
	assert.False(t, validator.Letters(nil, "abc1"))
	assert.False(t, validator.Letters(nil, "héllo"))
}

func TestCJKText(t *testing.T) {
	assert.True(t, validator.CJKText(nil, "中文"))
	assert.True(t, validator.CJKText(nil, "かな"))
	assert.True(t, validator.CJKText(nil, "\U00020000\U0002A6D6"), "extension B ideographs")
	assert.False(t, validator.CJKText(nil, "中a"))
	assert.False(t, validator.CJKText(nil, "\U0001F600"))
	assert.False(t, validator.CJKText(nil, ""))
}

func TestLength(t *testing.T) {
	t.Run("min and max", func(t *testing.T) {
		assert.False(t, validator.Length(nil, "ab", "3", "10"))
		assert.True(t, validator.Length(nil, "abc", "3", "10"))
		assert.True(t, validator.Length(nil, "abcdef", "3", "10"))
		assert.True(t, validator.Length(nil, "abcdefghij", "3", "10"))
		assert.False(t, validator.Length(nil, "abcdefghijk", "3", "10"))
	})

	t.Run("min only", func(t *testing.T) {
		assert.True(t, validator.Length(nil, "abcdefghijklmnop", "3"))
		assert.True(t, validator.Length(nil, "abc", "3", ""))
		assert.False(t, validator.Length(nil, "ab", "3"))
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		assert.True(t, validator.Length(nil, "中文字", "3", "3"))
	})

	t.Run("misconfigured bounds fail", func(t *testing.T) {
		assert.False(t, validator.Length(nil, "abc"))
		assert.False(t, validator.Length(nil, "abc", "x"))
		assert.False(t, validator.Length(nil, "abc", "1", "y"))
	})
}

func TestByteLength(t *testing.T) {
	// Runes above U+00FF weigh 2.
	assert.True(t, validator.ByteLength(nil, "中文", "4", "4"))
	assert.False(t, validator.ByteLength(nil, "中文", "5"))
	assert.True(t, validator.ByteLength(nil, "ab中", "4", "4"))

	// Latin-1 characters weigh 1 even though UTF-8 encodes them in 2 bytes.
	assert.True(t, validator.ByteLength(nil, "é", "1", "1"))
	assert.False(t, validator.ByteLength(nil, "abc", "1", "2"))
}

func TestMatch(t *testing.T) {
	ctx := validator.Values{"password": "secret"}

	assert.True(t, validator.Match(ctx, "secret", "password"))
	assert.False(t, validator.Match(ctx, "secre", "password"))
	assert.False(t, validator.Match(ctx, "secret"))
	assert.False(t, validator.Match(nil, "secret", "password"))
	assert.True(t, validator.Match(ctx, "", "missing"))
}
