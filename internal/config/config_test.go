package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
token: file-token
system_name: Sparrow DS
output: out
format: json
parallel: 3
log:
  level: debug
  format: json
`)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "Sparrow DS", cfg.SystemName)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.Parallel)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "system_name: Acme\n")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "Acme", cfg.SystemName)
	assert.Equal(t, "md", cfg.Format)
	assert.Equal(t, 5, cfg.Parallel)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FirstDirectoryWins(t *testing.T) {
	project, home := t.TempDir(), t.TempDir()
	writeConfig(t, project, "system_name: Project\n")
	writeConfig(t, home, "system_name: Home\n")

	cfg, err := NewLoader(project, home).Load()
	require.NoError(t, err)
	assert.Equal(t, "Project", cfg.SystemName)

	cfg, err = NewLoader(t.TempDir(), home).Load()
	require.NoError(t, err)
	assert.Equal(t, "Home", cfg.SystemName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "token: file-token\nparallel: 2\n")

	t.Setenv("FIGMA_SPARROW_TOKEN", "env-token")
	t.Setenv("FIGMA_SPARROW_PARALLEL", "8")
	t.Setenv("FIGMA_SPARROW_LOG_LEVEL", "warn")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 8, cfg.Parallel)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("FIGMA_SPARROW_FORMAT", "yaml")
	t.Setenv("FIGMA_SPARROW_OUTPUT", "env-out")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "md", "")
	fs.String("output", "figma-docs", "")
	require.NoError(t, fs.Parse([]string{"--format", "json"}))

	cfg, err := NewLoader(t.TempDir()).
		BindFlag("format", fs.Lookup("format")).
		BindFlag("output", fs.Lookup("output")).
		BindFlag("missing", fs.Lookup("missing")).
		Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format, "changed flag wins")
	assert.Equal(t, "env-out", cfg.Output, "unchanged flag does not shadow env")
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system_name: Custom\n"), 0o644))

	cfg, err := NewLoader(t.TempDir()).SetConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.SystemName)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "format: [unterminated\n")

		_, err := NewLoader(dir).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "format: pdf\nparallel: 0\n")

		_, err := NewLoader(dir).Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
		assert.ErrorIs(t, err, ErrInvalidParallel)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "markdown alias", mutate: func(c *Config) { c.Format = "markdown" }},
		{name: "upper case format", mutate: func(c *Config) { c.Format = "JSON" }},
		{name: "yml alias", mutate: func(c *Config) { c.Format = "yml" }},
		{name: "bad format", mutate: func(c *Config) { c.Format = "pdf" }, wantErr: []error{ErrInvalidFormat}},
		{name: "negative parallel", mutate: func(c *Config) { c.Parallel = -1 }, wantErr: []error{ErrInvalidParallel}},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: []error{ErrInvalidLogLevel}},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "text" }, wantErr: []error{ErrInvalidLogFormat}},
		{
			name: "all at once",
			mutate: func(c *Config) {
				c.Format = ""
				c.Parallel = 0
				c.Log = LogConfig{}
			},
			wantErr: []error{ErrInvalidFormat, ErrInvalidParallel, ErrInvalidLogLevel, ErrInvalidLogFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingToken)

	cfg.Token = "   "
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingToken)

	cfg.Token = "figd_123"
	assert.NoError(t, cfg.RequireToken())
}
