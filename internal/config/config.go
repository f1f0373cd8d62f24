// Package config provides Viper-based configuration loading for the database build.
package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/meur/mhwdb/internal/loader"
)

// DataConfig locates the JSON source tree.
type DataConfig struct {
	// Dir is the root of the data tree (monsters/, skills/, items/, armors/, decorations/).
	Dir string `mapstructure:"dir"`
	// Languages is the set of supported languages; every loader and builder consults it.
	Languages []string `mapstructure:"languages"`
}

// OutputConfig controls the build artifacts.
type OutputConfig struct {
	// Path is the SQLite file recreated on every run.
	Path string `mapstructure:"path"`
	// Summary, when non-empty, is where a YAML row-count summary is written.
	Summary string `mapstructure:"summary"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

var languageCode = regexp.MustCompile(`^[a-z]+$`)

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Output.Path == "" {
		errs = append(errs, "output.path must not be empty")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	var errs []string
	if d.Dir == "" {
		errs = append(errs, "data.dir must not be empty")
	}
	if len(d.Languages) == 0 {
		errs = append(errs, "data.languages must not be empty")
	}
	// Combined data files are keyed by their english names.
	if !slices.Contains(d.Languages, loader.CanonicalLanguage) {
		errs = append(errs, fmt.Sprintf("data.languages must include %q", loader.CanonicalLanguage))
	}
	seen := make(map[string]bool, len(d.Languages))
	for _, lang := range d.Languages {
		// Language files are matched on lower-cased names, so codes must be lower-case letters.
		if !languageCode.MatchString(lang) {
			errs = append(errs, fmt.Sprintf("data.languages entry %q must be lower-case letters", lang))
		}
		if seen[lang] {
			errs = append(errs, fmt.Sprintf("data.languages entry %q is repeated", lang))
		}
		seen[lang] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with MHWDB_ prefix
	v.SetEnvPrefix("MHWDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file or environment is given.
func Default() Config {
	return Config{
		Data:    DataConfig{Dir: ".", Languages: []string{"en"}},
		Output:  OutputConfig{Path: "mhw.db"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("data.dir", d.Data.Dir)
	v.SetDefault("data.languages", d.Data.Languages)

	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.summary", d.Output.Summary)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}
