package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor is a parsed rule declaration: "length(3,10)" becomes
// Descriptor{Name: "length", Args: []string{"3", "10"}}.
type Descriptor struct {
	Name string
	Args []string
}

// ParseDescriptor splits a rule declaration into its name and positional
// arguments. Arguments are comma separated and trimmed; an empty argument
// list "name()" yields no arguments.
func ParseDescriptor(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if strings.ContainsRune(s, ')') {
			return Descriptor{}, errors.Join(ErrInvalidDescriptor, fmt.Errorf("unexpected ')' in %q", s))
		}
		if s == "" {
			return Descriptor{}, ErrEmptyRuleName
		}
		return Descriptor{Name: s}, nil
	}

	name := strings.TrimSpace(s[:open])
	if name == "" {
		return Descriptor{}, ErrEmptyRuleName
	}
	if !strings.HasSuffix(s, ")") || strings.Count(s, "(") != 1 || strings.Count(s, ")") != 1 {
		return Descriptor{}, errors.Join(ErrInvalidDescriptor, fmt.Errorf("malformed argument list in %q", s))
	}

	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return Descriptor{Name: name}, nil
	}

	parts := strings.Split(inner, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return Descriptor{Name: name, Args: args}, nil
}

func (d Descriptor) String() string {
	if len(d.Args) == 0 {
		return d.Name
	}
	return d.Name + "(" + strings.Join(d.Args, ",") + ")"
}
