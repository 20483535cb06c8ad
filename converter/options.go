package converter

import (
	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/properties"
	"github.com/erraggy/bpmnconv/visitor"
)

// Option is a function that configures a Converter
type Option func(*convertConfig) error

// convertConfig holds configuration for a Converter
type convertConfig struct {
	props           *properties.Properties
	registry        *visitor.Registry
	notifier        Notifier
	logger          Logger
	strictMode      bool
	minimumSeverity Severity
}

// applyOptions applies option functions and fills in defaults
func applyOptions(opts ...Option) (*convertConfig, error) {
	cfg := &convertConfig{
		notifier:        NopNotifier{},
		logger:          NopLogger{},
		minimumSeverity: severity.SeverityInfo,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.props == nil {
		cfg.props = properties.Default()
	}
	if cfg.registry == nil {
		cfg.registry = visitor.Default()
	}
	exclusions := cfg.props.Exclusions()
	for _, name := range exclusions {
		if !cfg.registry.Has(name) {
			return nil, &bpmnerrors.ConfigError{Option: "exclusions", Value: name, Message: "no conversion rule has this name"}
		}
	}
	cfg.registry = cfg.registry.Without(exclusions...)
	return cfg, nil
}

// WithProperties sets the converter properties.
// Default: properties.Default()
func WithProperties(p *properties.Properties) Option {
	return func(cfg *convertConfig) error {
		if p == nil {
			return &bpmnerrors.ConfigError{Option: "properties", Message: "must not be nil"}
		}
		cfg.props = p
		return nil
	}
}

// WithRegistry replaces the conversion rules. Exclusions from the
// properties still apply.
// Default: visitor.Default()
func WithRegistry(r *visitor.Registry) Option {
	return func(cfg *convertConfig) error {
		if r == nil {
			return &bpmnerrors.ConfigError{Option: "registry", Message: "must not be nil"}
		}
		cfg.registry = r
		return nil
	}
}

// WithNotifier sets the receiver of walk events.
// Default: NopNotifier
func WithNotifier(n Notifier) Option {
	return func(cfg *convertConfig) error {
		if n == nil {
			n = NopNotifier{}
		}
		cfg.notifier = n
		return nil
	}
}

// WithLogger sets the logger.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *convertConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithStrictMode makes a conversion fail when any Warning is reported.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *convertConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithMinimumSeverity drops messages below s from the returned results.
// Counts are not affected.
// Default: SeverityInfo
func WithMinimumSeverity(s Severity) Option {
	return func(cfg *convertConfig) error {
		if !s.IsValid() {
			return &bpmnerrors.ConfigError{Option: "minimum severity", Value: int(s), Message: "unknown severity"}
		}
		cfg.minimumSeverity = s
		return nil
	}
}
