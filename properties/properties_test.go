package properties

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "script", p.ScriptHeader())
	assert.Equal(t, "language", p.ScriptFormatHeader())
	assert.Equal(t, "resultVariable", p.ResultVariableHeader())
	assert.Equal(t, "script", p.ScriptJobType())
	assert.Equal(t, "camunda-7-job", p.DefaultJobType())
	assert.Equal(t, "8.6.0", p.PlatformVersion())
	assert.False(t, p.AppendElements())
	assert.Empty(t, p.Exclusions())
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"blank script header", func(c *Config) { c.ScriptHeader = "" }},
		{"blank job type", func(c *Config) { c.DefaultJobType = "" }},
		{"bad platform version", func(c *Config) { c.PlatformVersion = "latest" }},
		{"blank exclusion", func(c *Config) { c.Exclusions = []string{"userTask@camunda:formKey", ""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, bpmnerrors.ErrConfig))
		})
	}
}

func TestPropertiesAreImmutable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclusions = []string{"bpmn:script"}
	p, err := New(cfg)
	require.NoError(t, err)

	cfg.Exclusions[0] = "changed"
	cfg.ScriptHeader = "changed"
	assert.Equal(t, []string{"bpmn:script"}, p.Exclusions())
	assert.Equal(t, "script", p.ScriptHeader())

	ex := p.Exclusions()
	ex[0] = "other"
	assert.Equal(t, []string{"bpmn:script"}, p.Exclusions())

	copied := p.Config()
	copied.Exclusions[0] = "other"
	assert.Equal(t, []string{"bpmn:script"}, p.Config().Exclusions)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"config.yaml": "scriptHeader: code\nexclusions:\n  - userTask@camunda:formKey\n",
		"config.toml": "scriptHeader = \"code\"\nexclusions = [\"userTask@camunda:formKey\"]\n",
		"config.json": `{"scriptHeader": "code", "exclusions": ["userTask@camunda:formKey"]}`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			cfg := DefaultConfig()
			require.NoError(t, ReadFile(path, &cfg))
			assert.Equal(t, "code", cfg.ScriptHeader)
			assert.Equal(t, []string{"userTask@camunda:formKey"}, cfg.Exclusions)
			assert.Equal(t, DefaultJobType, cfg.DefaultJobType, "unset fields keep their value")
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()

	err := ReadFile(filepath.Join(dir, "missing.yaml"), &cfg)
	assert.True(t, errors.Is(err, bpmnerrors.ErrConfig))

	ini := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(ini, []byte("x=1"), 0o600))
	err = ReadFile(ini, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("scriptHeader = "), 0o600))
	err = ReadFile(broken, &cfg)
	assert.True(t, errors.Is(err, bpmnerrors.ErrConfig))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvScriptHeader, "body")
	t.Setenv(EnvAppendElements, "true")
	t.Setenv(EnvExclusions, "userTask@camunda:formKey, ,startEvent@camunda:initiator")
	t.Setenv(EnvPlatformVersion, "")

	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, "body", cfg.ScriptHeader)
	assert.True(t, cfg.AppendElements)
	assert.Equal(t, []string{"userTask@camunda:formKey", "startEvent@camunda:initiator"}, cfg.Exclusions)
	assert.Equal(t, DefaultPlatformVersion, cfg.PlatformVersion)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvAppendElements, "maybe")
	cfg := ApplyEnv(DefaultConfig())
	assert.False(t, cfg.AppendElements)
}

func TestLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvScriptJobType, "groovy-worker")

	path := filepath.Join(t.TempDir(), "bpmnconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scriptHeader: code\nscriptJobType: from-file\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "code", p.ScriptHeader())
	assert.Equal(t, "groovy-worker", p.ScriptJobType(), "environment wins over the file")

	p, err = Load("")
	require.NoError(t, err, "a missing default file is not an error")
	assert.Equal(t, DefaultScriptHeader, p.ScriptHeader())

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, bpmnerrors.ErrConfig), "an explicit file must exist")
}
