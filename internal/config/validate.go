package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingToken indicates that no Figma access token was configured.
	ErrMissingToken = errors.New("missing Figma access token")

	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidParallel indicates a non-positive parallelism.
	ErrInvalidParallel = errors.New("invalid parallel setting")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

var (
	validFormats    = []string{"md", "markdown", "json", "yaml", "yml"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
)

// Validate checks every setting and reports all problems at once.
// The token is not required here; see RequireToken.
func Validate(cfg *Config) error {
	var errs []error

	if !oneOf(cfg.Format, validFormats) {
		errs = append(errs, fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidFormat, strings.Join(validFormats, ", "), cfg.Format))
	}
	if cfg.Parallel <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidParallel, cfg.Parallel))
	}
	if !oneOf(cfg.Log.Level, validLogLevels) {
		errs = append(errs, fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidLogLevel, strings.Join(validLogLevels, ", "), cfg.Log.Level))
	}
	if !oneOf(cfg.Log.Format, validLogFormats) {
		errs = append(errs, fmt.Errorf("%w: must be 'json' or 'console', got '%s'", ErrInvalidLogFormat, cfg.Log.Format))
	}

	return errors.Join(errs...)
}

// RequireToken fails with ErrMissingToken when no token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: pass --token, set FIGMA_SPARROW_TOKEN or add token to .figma-sparrow.yaml", ErrMissingToken)
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
