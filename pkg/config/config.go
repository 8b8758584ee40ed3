// Package config holds the invocation configuration: defaults, an optional
// YAML config file, and -s key=value overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the resolved configuration of one invocation.
type Config struct {
	// Level is the minimum log level.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	// Theme names a theme file for the exported DOT description.
	Theme string `yaml:"theme"`
	// HumanReadable renders underscores in vertex names as spaces.
	HumanReadable bool `yaml:"human_readable"`
	// Output is the default output path for the DOT description.
	Output string `yaml:"output"`
	// Settings are free-form options readable by plugins.
	Settings map[string]string `yaml:"settings"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Level:    "info",
		Settings: map[string]string{},
	}
}

// LoadFile reads a YAML config file over the defaults. A missing file is an
// error; pass an empty path to skip the file layer.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if cfg.Settings == nil {
		cfg.Settings = map[string]string{}
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration, reporting every violation at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("config.%s: failed %q validation", fe.Field(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "\n"))
		}
		return err
	}
	return nil
}

// ParseSettings parses "key=value" pairs (e.g. repeated -s flags) into the
// settings map. The first '=' splits key from value; further '=' characters
// belong to the value, and a missing value yields the empty string.
func (c *Config) ParseSettings(pairs []string) error {
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("invalid setting %q: key is empty", pair)
		}
		c.Settings[key] = value
	}
	return nil
}
