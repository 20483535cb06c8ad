// Package properties holds the settings shared by every conversion of a run.
//
// Config is the editable form read from files and the environment.
// Properties is built from a validated Config and cannot be changed
// afterwards, so one value can be shared by concurrent conversions.
package properties

import (
	"regexp"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

// Defaults for Config fields.
const (
	DefaultScriptHeader         = "script"
	DefaultScriptFormatHeader   = "language"
	DefaultResultVariableHeader = "resultVariable"
	DefaultScriptJobType        = "script"
	DefaultJobType              = "camunda-7-job"
	DefaultPlatformVersion      = "8.6.0"
)

var platformVersionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// Config lists every converter setting.
type Config struct {
	// ScriptHeader is the task header that receives inline script bodies
	ScriptHeader string `json:"scriptHeader" yaml:"scriptHeader" toml:"scriptHeader"`
	// ScriptFormatHeader is the task header that receives the script language
	ScriptFormatHeader string `json:"scriptFormatHeader" yaml:"scriptFormatHeader" toml:"scriptFormatHeader"`
	// ResultVariableHeader is the task header that receives a result variable
	ResultVariableHeader string `json:"resultVariableHeader" yaml:"resultVariableHeader" toml:"resultVariableHeader"`
	// ScriptJobType is the job type of converted script tasks
	ScriptJobType string `json:"scriptJobType" yaml:"scriptJobType" toml:"scriptJobType"`
	// DefaultJobType is the job type of tasks implemented by a delegate
	DefaultJobType string `json:"defaultJobType" yaml:"defaultJobType" toml:"defaultJobType"`
	// PlatformVersion is written as the execution platform version
	PlatformVersion string `json:"platformVersion" yaml:"platformVersion" toml:"platformVersion"`
	// AppendElements adds every message as a conversion:message element
	AppendElements bool `json:"appendElements" yaml:"appendElements" toml:"appendElements"`
	// Exclusions names conversion rules that are skipped
	Exclusions []string `json:"exclusions" yaml:"exclusions" toml:"exclusions"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ScriptHeader:         DefaultScriptHeader,
		ScriptFormatHeader:   DefaultScriptFormatHeader,
		ResultVariableHeader: DefaultResultVariableHeader,
		ScriptJobType:        DefaultScriptJobType,
		DefaultJobType:       DefaultJobType,
		PlatformVersion:      DefaultPlatformVersion,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ScriptHeader, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.ScriptFormatHeader, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.ResultVariableHeader, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.ScriptJobType, validation.Required),
		validation.Field(&c.DefaultJobType, validation.Required),
		validation.Field(&c.PlatformVersion, validation.Required, validation.Match(platformVersionPattern)),
		validation.Field(&c.Exclusions, validation.Each(validation.Required)),
	)
}

// Properties is the immutable form of Config.
type Properties struct {
	cfg Config
}

// New validates c and freezes it.
func New(c Config) (*Properties, error) {
	if err := c.Validate(); err != nil {
		return nil, &bpmnerrors.ConfigError{Message: "invalid converter properties", Cause: err}
	}
	p := &Properties{cfg: c}
	p.cfg.Exclusions = slices.Clone(c.Exclusions)
	return p, nil
}

// Default returns properties built from DefaultConfig.
func Default() *Properties {
	p, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// ScriptHeader returns the task header for inline scripts.
func (p *Properties) ScriptHeader() string { return p.cfg.ScriptHeader }

// ScriptFormatHeader returns the task header for the script language.
func (p *Properties) ScriptFormatHeader() string { return p.cfg.ScriptFormatHeader }

// ResultVariableHeader returns the task header for result variables.
func (p *Properties) ResultVariableHeader() string { return p.cfg.ResultVariableHeader }

// ScriptJobType returns the job type of script tasks.
func (p *Properties) ScriptJobType() string { return p.cfg.ScriptJobType }

// DefaultJobType returns the job type of delegate based tasks.
func (p *Properties) DefaultJobType() string { return p.cfg.DefaultJobType }

// PlatformVersion returns the target platform version.
func (p *Properties) PlatformVersion() string { return p.cfg.PlatformVersion }

// AppendElements reports whether messages are written into the document.
func (p *Properties) AppendElements() bool { return p.cfg.AppendElements }

// Exclusions returns the excluded rule names.
func (p *Properties) Exclusions() []string {
	return slices.Clone(p.cfg.Exclusions)
}

// Config returns a copy of the settings the properties were built from.
func (p *Properties) Config() Config {
	c := p.cfg
	c.Exclusions = slices.Clone(p.cfg.Exclusions)
	return c
}
