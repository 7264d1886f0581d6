// Copyright 2025 go-spmd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads spmdinfo settings from defaults, an optional YAML
// file, SPMD_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config is the tool configuration.
type Config struct {
	LogLevel     string      `mapstructure:"log_level"`
	NoSIMD       bool        `mapstructure:"no_simd"`
	GatherPolicy string      `mapstructure:"gather_policy"`
	Arch         string      `mapstructure:"arch"`
	Check        CheckConfig `mapstructure:"check"`
}

// CheckConfig controls the math kernel self-check.
type CheckConfig struct {
	Samples   int     `mapstructure:"samples"`
	Tolerance float64 `mapstructure:"tolerance"`
	MaxAbs    float64 `mapstructure:"max_abs"`
	Workers   int     `mapstructure:"workers"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		GatherPolicy: "manual",
		Arch:         "generic8",
		Check: CheckConfig{
			Samples:   4096,
			Tolerance: 1e-5,
			MaxAbs:    8192,
		},
	}
}

// New returns a viper instance primed with defaults, the SPMD env prefix
// and the config search path. Flags are bound onto it by the caller
// before Load.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".spmd")
	}

	v.SetEnvPrefix("SPMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the config file, if any, and unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "warning", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level must be one of: %v", validLevels)
	}

	validPolicies := []string{"manual", "hardware"}
	if !slices.Contains(validPolicies, c.GatherPolicy) {
		return fmt.Errorf("gather_policy must be one of: %v", validPolicies)
	}

	if c.Arch == "" {
		return errors.New("arch must not be empty")
	}

	if c.Check.Samples <= 0 {
		return errors.New("check.samples must be positive")
	}
	if c.Check.Tolerance <= 0 {
		return errors.New("check.tolerance must be positive")
	}
	if c.Check.MaxAbs <= 0 {
		return errors.New("check.max_abs must be positive")
	}
	if c.Check.Workers < 0 {
		return errors.New("check.workers must not be negative")
	}
	return nil
}

// ConfigFile returns the path of the file viper read, or "" if none.
func ConfigFile(v *viper.Viper) string {
	if f := v.ConfigFileUsed(); f != "" {
		return filepath.Clean(f)
	}
	return ""
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("no_simd", cfg.NoSIMD)
	v.SetDefault("gather_policy", cfg.GatherPolicy)
	v.SetDefault("arch", cfg.Arch)

	v.SetDefault("check.samples", cfg.Check.Samples)
	v.SetDefault("check.tolerance", cfg.Check.Tolerance)
	v.SetDefault("check.max_abs", cfg.Check.MaxAbs)
	v.SetDefault("check.workers", cfg.Check.Workers)
}
