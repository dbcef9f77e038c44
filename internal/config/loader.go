package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name looked up without extension.
	FileName = ".figma-sparrow"
	// EnvPrefix prefixes every environment override, e.g. FIGMA_SPARROW_TOKEN.
	EnvPrefix = "FIGMA_SPARROW"
)

// Loader reads the configuration.
// Priority (highest to lowest): flags, environment, config file, defaults.
type Loader struct {
	dirs       []string
	configFile string
	flags      map[string]*pflag.Flag
}

// NewLoader creates a loader that searches dirs, in order, for .figma-sparrow.yaml.
// With no dirs the working directory and the home directory are searched.
func NewLoader(dirs ...string) *Loader {
	if len(dirs) == 0 {
		dirs = []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home)
		}
	}

	return &Loader{
		dirs:  dirs,
		flags: make(map[string]*pflag.Flag),
	}
}

// SetConfigFile reads path instead of searching for a config file.
func (l *Loader) SetConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// BindFlag makes a command line flag override key when the flag was set.
// A nil flag is ignored.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) *Loader {
	if flag != nil {
		l.flags[key] = flag
	}
	return l
}

// Load builds, validates and returns the configuration.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, dir := range l.dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// FIGMA_SPARROW_LOG_LEVEL -> log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", flag.Name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Keys without a default must still be known to viper for env lookups to
	// reach Unmarshal.
	v.SetDefault("token", defaults.Token)
	v.SetDefault("system_name", defaults.SystemName)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}
