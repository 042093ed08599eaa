package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Form is a declarative form definition.
type Form struct {
	Name    string  `yaml:"name"`
	Options Options `yaml:"options"`
	Fields  []Field `yaml:"fields"`
}

// Options holds the session settings a schema may pin. Unset values leave
// the session defaults untouched.
type Options struct {
	StopOnError    *bool    `yaml:"stop_on_error"`
	AllowMissing   *bool    `yaml:"allow_missing"`
	BlurCheck      *bool    `yaml:"blur_check"`
	TriggerDefault []string `yaml:"trigger_default"`
	DefaultTarget  string   `yaml:"default_target"`
}

// Field declares one validated input.
type Field struct {
	Name          string   `yaml:"name"`
	Target        string   `yaml:"target"`
	MatchedBy     string   `yaml:"matched_by"`
	ManualMessage bool     `yaml:"manual_message"`
	Rules         RuleList `yaml:"rules"`
}

// RuleList keeps rules in document order. It accepts either a mapping of
// descriptor to message:
//
//	rules:
//	  required: name is required
//	  length(3,10): 3 to 10 characters
//
// or a sequence of single-entry mappings and bare descriptors:
//
//	rules:
//	  - required: name is required
//	  - digits
type RuleList []form.Rule

// UnmarshalYAML walks the node directly because decoding into a Go map
// would lose rule order.
func (l *RuleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		rules, err := mappingRules(node)
		if err != nil {
			return err
		}
		*l = rules
		return nil

	case yaml.SequenceNode:
		rules := make(RuleList, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				rules = append(rules, form.Use(item.Value, ""))
			case yaml.MappingNode:
				if len(item.Content) != 2 {
					return fmt.Errorf("line %d: rule entry must have exactly one descriptor", item.Line)
				}
				r, err := mappingRules(item)
				if err != nil {
					return err
				}
				rules = append(rules, r...)
			default:
				return fmt.Errorf("line %d: unexpected rule entry", item.Line)
			}
		}
		*l = rules
		return nil

	default:
		return fmt.Errorf("line %d: rules must be a mapping or a sequence", node.Line)
	}
}

func mappingRules(node *yaml.Node) (RuleList, error) {
	rules := make(RuleList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: rule descriptor and message must be scalars", key.Line)
		}
		rules = append(rules, form.Use(key.Value, val.Value))
	}
	return rules, nil
}

// Specs converts the fields into form specs, preserving order.
func (f *Form) Specs() []form.FieldSpec {
	specs := make([]form.FieldSpec, len(f.Fields))
	for i, fld := range f.Fields {
		specs[i] = form.FieldSpec{
			Name:          fld.Name,
			Rules:         append([]form.Rule(nil), fld.Rules...),
			ManualMessage: fld.ManualMessage,
			MatchedBy:     fld.MatchedBy,
			Target:        fld.Target,
		}
	}
	return specs
}

// SessionOptions converts the pinned options into form options. Apply them
// after environment-derived options so the schema wins.
func (f *Form) SessionOptions() []form.Option {
	var opts []form.Option
	o := f.Options
	if o.StopOnError != nil {
		opts = append(opts, form.WithStopOnError(*o.StopOnError))
	}
	if o.AllowMissing != nil {
		opts = append(opts, form.WithAllowMissing(*o.AllowMissing))
	}
	if o.BlurCheck != nil {
		opts = append(opts, form.WithBlurCheck(*o.BlurCheck))
	}
	if len(o.TriggerDefault) > 0 {
		opts = append(opts, form.WithTriggerDefault(o.TriggerDefault...))
	}
	if o.DefaultTarget != "" {
		opts = append(opts, form.WithDefaultTarget(o.DefaultTarget))
	}
	return opts
}
