package properties

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

// DefaultConfigPath is consulted when no configuration file is given.
const DefaultConfigPath = "~/.config/bpmnconv/config.yaml"

// Environment variables that override file settings.
const (
	EnvScriptHeader         = "BPMNCONV_SCRIPT_HEADER"
	EnvScriptFormatHeader   = "BPMNCONV_SCRIPT_FORMAT_HEADER"
	EnvResultVariableHeader = "BPMNCONV_RESULT_VARIABLE_HEADER"
	EnvScriptJobType        = "BPMNCONV_SCRIPT_JOB_TYPE"
	EnvDefaultJobType       = "BPMNCONV_DEFAULT_JOB_TYPE"
	EnvPlatformVersion      = "BPMNCONV_PLATFORM_VERSION"
	EnvAppendElements       = "BPMNCONV_APPEND_ELEMENTS"
	EnvExclusions           = "BPMNCONV_EXCLUSIONS"
)

// Load resolves the properties of a run: defaults, then the file at path
// (the default path when path is empty and that file exists), then the
// environment.
func Load(path string) (*Properties, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &bpmnerrors.ConfigError{Option: "config", Value: path, Cause: err}
	}
	if _, statErr := os.Stat(expanded); statErr == nil || explicit {
		if err := ReadFile(expanded, &cfg); err != nil {
			return nil, err
		}
	}

	return New(ApplyEnv(cfg))
}

// ReadFile decodes the file at path into cfg. Fields missing from the file
// keep their current value. The format follows the extension: .yaml, .yml,
// .toml or .json.
func ReadFile(path string, cfg *Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return &bpmnerrors.ConfigError{Option: "config", Value: path, Cause: err}
	}
	data, err := os.ReadFile(expanded) //nolint:gosec // path is chosen by the user
	if err != nil {
		return &bpmnerrors.ConfigError{Option: "config", Value: path, Message: "cannot read file", Cause: err}
	}

	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg)
	default:
		return &bpmnerrors.ConfigError{Option: "config", Value: path, Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if err != nil {
		return &bpmnerrors.ConfigError{Option: "config", Value: path, Message: "cannot decode file", Cause: err}
	}
	return nil
}

// ApplyEnv returns cfg with BPMNCONV_* overrides applied. Invalid values log
// a warning and keep the current setting.
func ApplyEnv(cfg Config) Config {
	cfg.ScriptHeader = envString(EnvScriptHeader, cfg.ScriptHeader)
	cfg.ScriptFormatHeader = envString(EnvScriptFormatHeader, cfg.ScriptFormatHeader)
	cfg.ResultVariableHeader = envString(EnvResultVariableHeader, cfg.ResultVariableHeader)
	cfg.ScriptJobType = envString(EnvScriptJobType, cfg.ScriptJobType)
	cfg.DefaultJobType = envString(EnvDefaultJobType, cfg.DefaultJobType)
	cfg.PlatformVersion = envString(EnvPlatformVersion, cfg.PlatformVersion)
	cfg.AppendElements = envBool(EnvAppendElements, cfg.AppendElements)
	if v := os.Getenv(EnvExclusions); v != "" {
		cfg.Exclusions = splitList(v)
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
