package form

import (
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/message"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const (
	// DefaultTarget is the message target used when neither the field spec
	// nor the value provider names one.
	DefaultTarget = ".j_msg"

	// DefaultSubmitCooldown is how long SubmitRequested ignores repeats.
	DefaultSubmitCooldown = time.Second
)

// Config mirrors the session options that make sense to set from the
// environment. Load it with config.Load and apply it with WithConfig.
type Config struct {
	StopOnError    bool          `env:"FORM_STOP_ON_ERROR" envDefault:"false"`
	AllowMissing   bool          `env:"FORM_ALLOW_MISSING" envDefault:"false"`
	BlurCheck      bool          `env:"FORM_BLUR_CHECK" envDefault:"true"`
	TriggerDefault []string      `env:"FORM_TRIGGER_DEFAULT" envSeparator:","`
	DefaultTarget  string        `env:"FORM_DEFAULT_TARGET" envDefault:".j_msg"`
	MessageDelay   time.Duration `env:"FORM_MESSAGE_DELAY" envDefault:"100ms"`
	SubmitCooldown time.Duration `env:"FORM_SUBMIT_COOLDOWN" envDefault:"1s"`
	ErrorIcon      string        `env:"FORM_ERROR_ICON"`
	SuccessIcon    string        `env:"FORM_SUCCESS_ICON"`
}

// Option configures a Validator or Session.
type Option func(*config)

type config struct {
	stopOnError    bool
	allowMissing   bool
	blurCheck      bool
	triggerDefault []string
	defaultTarget  string
	delay          time.Duration
	cooldown       time.Duration
	errorIcon      string
	successIcon    string
	formatter      func(string) string
	rules          *validator.Registry
	clock          message.Clock
	logger         *slog.Logger
	gate           ControlGate
	beforeValid    func(values map[string]string) bool
	valid          func(values map[string]string) error
}

func defaultConfig() *config {
	return &config{
		blurCheck:     true,
		defaultTarget: DefaultTarget,
		delay:         message.DefaultDelay,
		cooldown:      DefaultSubmitCooldown,
		clock:         message.SystemClock(),
		logger:        logger.Discard(),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithConfig applies an environment-loaded Config.
func WithConfig(c Config) Option {
	return func(cfg *config) {
		cfg.stopOnError = c.StopOnError
		cfg.allowMissing = c.AllowMissing
		cfg.blurCheck = c.BlurCheck
		cfg.triggerDefault = slices.Clone(c.TriggerDefault)
		if c.DefaultTarget != "" {
			cfg.defaultTarget = c.DefaultTarget
		}
		if c.MessageDelay >= 0 {
			cfg.delay = c.MessageDelay
		}
		if c.SubmitCooldown >= 0 {
			cfg.cooldown = c.SubmitCooldown
		}
		cfg.errorIcon = c.ErrorIcon
		cfg.successIcon = c.SuccessIcon
	}
}

// WithStopOnError aborts a whole-form check at the first failing field.
func WithStopOnError(stop bool) Option {
	return func(c *config) { c.stopOnError = stop }
}

// WithAllowMissing skips declared fields the provider does not have instead
// of evaluating them as "".
func WithAllowMissing(allow bool) Option {
	return func(c *config) { c.allowMissing = allow }
}

// WithBlurCheck controls whether FieldChanged events validate the field.
// When off, validation happens on submit only.
func WithBlurCheck(enabled bool) Option {
	return func(c *config) { c.blurCheck = enabled }
}

// WithTriggerDefault lists fields evaluated at construction when they
// already hold a value (browser autofill, restored drafts).
func WithTriggerDefault(fields ...string) Option {
	return func(c *config) { c.triggerDefault = append(c.triggerDefault, fields...) }
}

// WithDefaultTarget sets the fallback message target.
func WithDefaultTarget(target string) Option {
	return func(c *config) {
		if target != "" {
			c.defaultTarget = target
		}
	}
}

// WithMessageDelay sets the message coalescing window.
func WithMessageDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithSubmitCooldown sets the window in which repeated SubmitRequested
// events are ignored. Zero disables throttling.
func WithSubmitCooldown(d time.Duration) Option {
	return func(c *config) { c.cooldown = d }
}

func WithErrorIcon(markup string) Option {
	return func(c *config) { c.errorIcon = markup }
}

func WithSuccessIcon(markup string) Option {
	return func(c *config) { c.successIcon = markup }
}

// WithMessageFormatter transforms failure messages before rendering.
func WithMessageFormatter(fn func(msg string) string) Option {
	return func(c *config) { c.formatter = fn }
}

// WithRules sets the registry of instance rules. Without it only built-in
// rules resolve.
func WithRules(r *validator.Registry) Option {
	return func(c *config) { c.rules = r }
}

// WithClock replaces the clock used for message delays and the submit cooldown.
func WithClock(clock message.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithControlGate enables submit gating: the control starts disabled and is
// enabled only while every declared field holds a valid cached state.
func WithControlGate(g ControlGate) Option {
	return func(c *config) { c.gate = g }
}

// WithBeforeValid registers a veto hook run after a successful check and
// before the valid callback. Returning false blocks submission.
func WithBeforeValid(fn func(values map[string]string) bool) Option {
	return func(c *config) { c.beforeValid = fn }
}

// WithValid registers the submit callback. A nil return lets submission
// proceed; any error blocks it.
func WithValid(fn func(values map[string]string) error) Option {
	return func(c *config) { c.valid = fn }
}
