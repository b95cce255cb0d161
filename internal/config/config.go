package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigDir is the per-project directory searched for config.{json,yaml,toml}.
const ConfigDir = ".blockmeta"

// Config represents the complete blockmeta configuration
type Config struct {
	Version  int            `json:"version" mapstructure:"version"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Compose  ComposeConfig  `json:"compose" mapstructure:"compose"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// AnalysisConfig extends the source analyzer's built-in tables
type AnalysisConfig struct {
	// Stdlib lists extra module roots that never count as dependencies
	Stdlib []string `json:"stdlib" mapstructure:"stdlib"`
	// ArgTypeRules are appended after the built-in PORT rule
	ArgTypeRules []ArgTypeRule `json:"argTypeRules" mapstructure:"argTypeRules"`
}

// ArgTypeRule maps a case-insensitive name fragment to an argument type
type ArgTypeRule struct {
	Contains string `json:"contains" mapstructure:"contains"`
	Type     string `json:"type" mapstructure:"type"`
}

// ComposeConfig contains metadata composition overrides
type ComposeConfig struct {
	// Platforms overrides the default platform list per language segment
	Platforms map[string][]string `json:"platforms" mapstructure:"platforms"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Level: "",
		},
		Analysis: AnalysisConfig{
			Stdlib:       []string{},
			ArgTypeRules: []ArgTypeRule{},
		},
		Compose: ComposeConfig{
			Platforms: map[string][]string{},
		},
	}
}

// LoadConfig loads configuration from an explicit file, or from .blockmeta/config.*
// under dir when file is empty. A missing default file yields DefaultConfig.
func LoadConfig(dir, file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("version", 1)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(dir, ConfigDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", v.ConfigFileUsed(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot type-check
func (c *Config) Validate() error {
	for i, r := range c.Analysis.ArgTypeRules {
		if strings.TrimSpace(r.Contains) == "" {
			return fmt.Errorf("analysis.argTypeRules[%d]: contains must not be empty", i)
		}
		switch r.Type {
		case "int", "str":
		default:
			return fmt.Errorf("analysis.argTypeRules[%d]: type %q must be int or str", i, r.Type)
		}
	}
	for lang, platforms := range c.Compose.Platforms {
		if len(platforms) == 0 {
			return fmt.Errorf("compose.platforms.%s: must list at least one platform", lang)
		}
	}
	return nil
}
