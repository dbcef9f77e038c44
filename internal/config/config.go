// Package config loads figma-sparrow settings from defaults, a .figma-sparrow.yaml
// file, FIGMA_SPARROW_* environment variables and command line flags.
package config

// Config is the complete figma-sparrow configuration.
type Config struct {
	Token      string    `yaml:"token" mapstructure:"token"`             // Figma personal access token
	SystemName string    `yaml:"system_name" mapstructure:"system_name"` // design system name recorded in entries
	Output     string    `yaml:"output" mapstructure:"output"`           // output directory
	Format     string    `yaml:"format" mapstructure:"format"`           // "md", "json" or "yaml"
	Parallel   int       `yaml:"parallel" mapstructure:"parallel"`       // concurrent extractions
	Log        LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures the structured logger used by the MCP server.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output:   "figma-docs",
		Format:   "md",
		Parallel: 5,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
