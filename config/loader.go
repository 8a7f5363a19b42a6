// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/message"
	"gopkg.in/yaml.v3"
)

// LoaderOptions customizes Load's behaviour; the zero value is the
// production default.
type LoaderOptions struct {
	ConfigDir           string
	Environment         string
	SkipEnvSubstitution bool
	SkipValidation      bool
}

// DefaultLoaderOptions returns the options Load uses when called with none.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{ConfigDir: "config", Environment: GetEnvironment()}
}

// Load first loads a .env file from the current working directory into the
// process environment (via godotenv, ignored if absent), then reads a
// participant configuration, trying, in order, <dir>/<environment>.yaml,
// <dir>/default.yaml and <dir>/config.yaml, falling back to an empty
// Config if none exist. It then applies field defaults, expands ${VAR}
// placeholders, applies direct environment variable overrides, and
// validates the result.
func Load(opts ...LoaderOptions) (*Config, error) {
	o := DefaultLoaderOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.ConfigDir == "" {
		o.ConfigDir = "config"
	}
	if o.Environment == "" {
		o.Environment = GetEnvironment()
	}

	_ = godotenv.Load()

	cfg, err := loadConfigFile(o.ConfigDir, o.Environment)
	if err != nil {
		return nil, err
	}

	setDefaults(cfg)

	if !o.SkipEnvSubstitution {
		substituteInPlace(cfg)
	}
	applyEnvironmentOverrides(cfg)

	if !o.SkipValidation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadForEnvironment is Load scoped to a specific environment name,
// regardless of UFTP_ENV/ENVIRONMENT.
func LoadForEnvironment(env string) (*Config, error) {
	o := DefaultLoaderOptions()
	o.Environment = env
	return Load(o)
}

// MustLoad calls Load and panics on error, for callers where a broken
// config should fail fast.
func MustLoad(opts ...LoaderOptions) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func loadConfigFile(dir, environment string) (*Config, error) {
	candidates := []string{
		filepath.Join(dir, environment+".yaml"),
		filepath.Join(dir, "default.yaml"),
		filepath.Join(dir, "config.yaml"),
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, logger.NewOperationalError(logger.ErrCodeConfigurationError,
				fmt.Sprintf("reading %s", path), err)
		}
		cfg := &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, logger.NewOperationalError(logger.ErrCodeConfigurationError,
				fmt.Sprintf("parsing %s", path), err)
		}
		return cfg, nil
	}
	return &Config{}, nil
}

// substituteInPlace expands ${VAR} placeholders across every string field
// that plausibly carries one.
func substituteInPlace(cfg *Config) {
	cfg.SenderDomain = SubstituteEnvVars(cfg.SenderDomain)
	cfg.SigningKey = SubstituteEnvVars(cfg.SigningKey)
	cfg.BindHost = SubstituteEnvVars(cfg.BindHost)
	cfg.Path = SubstituteEnvVars(cfg.Path)
	cfg.OAuth.TokenURL = SubstituteEnvVars(cfg.OAuth.TokenURL)
	cfg.OAuth.ClientID = SubstituteEnvVars(cfg.OAuth.ClientID)
	cfg.OAuth.ClientSecret = SubstituteEnvVars(cfg.OAuth.ClientSecret)
	cfg.Logging.Level = SubstituteEnvVars(cfg.Logging.Level)
}

func normalizeRole(v string) message.Role {
	return message.Role(strings.ToUpper(strings.TrimSpace(v)))
}
