package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestFormatRules(t *testing.T) {
	tests := []struct {
		name    string
		fn      validator.Func
		valid   []string
		invalid []string
	}{
		{
			name:    "ip",
			fn:      validator.IP,
			valid:   []string{"127.0.0.1", "192.168.1.254", "255.255.255.255"},
			invalid: []string{"", "256.1.1.1", "1.2.3", "a.b.c.d", "1.2.3.4.5", "x1.2.3.4y", " 1.2.3.4"},
		},
		{
			name:    "url",
			fn:      validator.URL,
			valid:   []string{"http://example.com", "https://sub.example.co/path?q=1"},
			invalid: []string{"", "ftp://example.com", "example.com", "http://localhost"},
		},
		{
			name:    "date",
			fn:      validator.Date,
			valid:   []string{"2017-1-2", "2017/1/2", "2017-01-02", "2017/01/02"},
			invalid: []string{"", "17-01-02", "2017.01.02", "2017-01/02"},
		},
		{
			name:    "email",
			fn:      validator.Email,
			valid:   []string{"a@x.com", "first.last+tag@example.co.uk", "USER@EXAMPLE.ORG"},
			invalid: []string{"", "plain", "@x.com", "a@x", "a@x.toolongtld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.valid {
				assert.True(t, tt.fn(nil, v), "should pass: %q", v)
			}
			for _, v := range tt.invalid {
				assert.False(t, tt.fn(nil, v), "should fail: %q", v)
			}
		})
	}
}
