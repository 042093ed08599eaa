package locale

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML document of the shape
//
//	en:
//	  email is required: Email is required
//	  length:
//	    between: Use %{min} to %{max} characters
//
// into language -> flattened key -> message.
func Parse(ctx context.Context, data []byte) (map[string]map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	out := make(map[string]map[string]string, len(raw))
	for lang, val := range raw {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, errors.Join(ErrFailedToParseYAML, fmt.Errorf("language %q: expected a mapping, got %T", lang, val))
		}
		msgs := make(map[string]string)
		flatten("", tree, msgs)
		out[lang] = msgs
	}
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// LoadDir parses every .yaml and .yml file in dir and builds one catalog.
// Later files (in directory order) override earlier ones per key.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}

	merged := make(map[string]map[string]string)
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		langs, err := Parse(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for lang, msgs := range langs {
			if merged[lang] == nil {
				merged[lang] = make(map[string]string, len(msgs))
			}
			for k, v := range msgs {
				merged[lang][k] = v
			}
		}
	}
	return New(merged, opts...)
}
