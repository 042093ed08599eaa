package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Parse decodes a single form schema. Unknown keys are rejected.
func Parse(ctx context.Context, data []byte) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Form
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile parses the schema at path. A schema without a name takes the
// file name without its extension.
func LoadFile(ctx context.Context, path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Form
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, fmt.Errorf("%s: %w", path, err))
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	if f.Name == "" {
		f.Name = name
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// LoadDir parses every .yaml and .yml file directly inside dir and indexes
// the forms by name.
func LoadDir(ctx context.Context, dir string) (map[string]*Form, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %s: %w", dir, err)
	}

	forms := make(map[string]*Form)
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrParsingCancelled, err)
		}

		path := filepath.Join(dir, e.Name())
		f, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if _, dup := forms[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateSchema, f.Name, path)
		}
		forms[f.Name] = f
	}
	return forms, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func (f *Form) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.Join(ErrInvalidSchema, errors.New("form name is empty"))
	}
	if len(f.Fields) == 0 {
		return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s declares no fields", f.Name))
	}

	seen := make(map[string]bool, len(f.Fields))
	for _, fld := range f.Fields {
		if fld.Name == "" {
			return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s: field without a name", f.Name))
		}
		if seen[fld.Name] {
			return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s: duplicate field %s", f.Name, fld.Name))
		}
		seen[fld.Name] = true

		for _, r := range fld.Rules {
			if _, err := validator.ParseDescriptor(r.Descriptor); err != nil {
				return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s: field %s", f.Name, fld.Name), err)
			}
		}
	}

	for _, fld := range f.Fields {
		if fld.MatchedBy != "" && (!seen[fld.MatchedBy] || fld.MatchedBy == fld.Name) {
			return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s: field %s is matched by unknown field %q", f.Name, fld.Name, fld.MatchedBy))
		}
	}
	for _, name := range f.Options.TriggerDefault {
		if !seen[name] {
			return errors.Join(ErrInvalidSchema, fmt.Errorf("form %s: trigger_default names unknown field %q", f.Name, name))
		}
	}
	return nil
}
