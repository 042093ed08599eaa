package locale

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used as fallback when none is configured.
const DefaultLanguage = "en"

// Catalog holds translated validation messages per language.
type Catalog struct {
	fallback string
	langs    []string
	messages map[string]map[string]string
	matcher  language.Matcher
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFallback sets the language used when a request matches nothing or a
// key is missing in the requested language.
func WithFallback(lang string) Option {
	return func(c *Catalog) { c.fallback = lang }
}

// New builds a catalog from language -> key -> message maps. Keys of nested
// YAML documents are flattened with dots before they get here.
func New(messages map[string]map[string]string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		fallback: DefaultLanguage,
		messages: make(map[string]map[string]string, len(messages)),
	}
	for _, opt := range opts {
		opt(c)
	}

	fb, err := canonical(c.fallback)
	if err != nil {
		return nil, err
	}
	c.fallback = fb

	for lang, msgs := range messages {
		tag, err := canonical(lang)
		if err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			continue
		}
		if c.messages[tag] == nil {
			c.messages[tag] = make(map[string]string, len(msgs))
		}
		maps.Copy(c.messages[tag], msgs)
	}
	if len(c.messages) == 0 {
		return nil, ErrNoCatalogs
	}

	// The fallback goes first: the matcher answers index 0 when nothing fits.
	others := slices.Sorted(maps.Keys(c.messages))
	c.langs = append(c.langs, c.fallback)
	for _, l := range others {
		if l != c.fallback {
			c.langs = append(c.langs, l)
		}
	}

	tags := make([]language.Tag, len(c.langs))
	for i, l := range c.langs {
		tags[i] = language.Make(l)
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Languages lists the supported languages, fallback first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// Fallback returns the fallback language.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Match picks the best supported language for an Accept-Language header.
func (c *Catalog) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.langs[idx]
}

// T returns the message for key in lang, falling back to the fallback
// language and then to key itself. args are name/value pairs substituted
// into %{name} placeholders.
func (c *Catalog) T(lang, key string, args ...string) string {
	msg, ok := c.lookup(lang, key)
	if !ok {
		msg = key
	}
	return substitute(msg, args)
}

// Has reports whether key exists in lang or the fallback language.
func (c *Catalog) Has(lang, key string) bool {
	_, ok := c.lookup(lang, key)
	return ok
}

// Formatter returns a message formatter for form.WithMessageFormatter that
// treats failure messages as catalog keys. Unknown messages pass through.
func (c *Catalog) Formatter(lang string) func(string) string {
	return func(msg string) string {
		if translated, ok := c.lookup(lang, msg); ok {
			return translated
		}
		return msg
	}
}

func (c *Catalog) lookup(lang, key string) (string, bool) {
	if tag, err := canonical(lang); err == nil {
		if msg, ok := c.messages[tag][key]; ok {
			return msg, true
		}
		if base, _ := language.Make(tag).Base(); base.String() != tag {
			if msg, ok := c.messages[base.String()][key]; ok {
				return msg, true
			}
		}
	}
	msg, ok := c.messages[c.fallback][key]
	return msg, ok
}

func substitute(msg string, args []string) string {
	if len(args) < 2 || !strings.Contains(msg, "%{") {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "%{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func canonical(lang string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", errors.Join(ErrInvalidLanguage, fmt.Errorf("%q: %w", lang, err))
	}
	return tag.String(), nil
}
