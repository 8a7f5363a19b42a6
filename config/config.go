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

// Package config loads a single Shapeshifter participant's configuration
// from a YAML file, a `.env` development overlay, and direct environment
// variables, in that order of increasing precedence. Adapted from the
// teacher's config/config.go + config/loader.go + config/env.go trio,
// scoped to the fields spec.md §6.3 names.
package config

import (
	"fmt"
	"time"

	"github.com/usef-uftp/shapeshifter-go/message"
)

// Config is the full configuration surface of one participant service
// instance.
type Config struct {
	Environment string `yaml:"environment"`

	// SenderDomain is the domain this instance publishes discovery records
	// under and stamps into every outbound message frame.
	SenderDomain string `yaml:"sender_domain"`
	// Role is the USEF role this instance operates as.
	Role message.Role `yaml:"role"`
	// SigningKey is the base64-encoded Ed25519 private key (seed or full
	// 64-byte form) this instance seals outgoing envelopes with.
	SigningKey string `yaml:"signing_key"`

	BindHost string `yaml:"bind_host"`
	BindPort int    `yaml:"bind_port"`
	Path     string `yaml:"path"`

	NumInboundThreads      int           `yaml:"num_inbound_threads"`
	NumOutboundThreads     int           `yaml:"num_outbound_threads"`
	NumDeliveryAttempts    int           `yaml:"num_delivery_attempts"`
	RequestTimeout         time.Duration `yaml:"request_timeout"`
	ExponentialRetryFactor float64       `yaml:"exponential_retry_factor"`
	ExponentialRetryBase   float64       `yaml:"exponential_retry_base"`

	OAuth   OAuthConfig   `yaml:"oauth"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Health  HealthConfig  `yaml:"health"`
}

// OAuthConfig is the default client-credentials configuration applied to
// outbound clients when a per-peer oauth_resolver override (spec.md §6.3)
// is not supplied. Leaving TokenURL empty disables bearer-token attachment.
type OAuthConfig struct {
	TokenURL     string        `yaml:"token_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	Scope        string        `yaml:"scope"`
	RefreshAhead time.Duration `yaml:"refresh_ahead"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Addr returns the bind_host:bind_port pair the service endpoint listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.BindPort)
}

// setDefaults fills every field the config file and environment leave
// unset, matching original_source/.../cli.py's hardcoded defaults where the
// spec doesn't otherwise constrain a value.
func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.BindHost == "" {
		cfg.BindHost = "0.0.0.0"
	}
	if cfg.BindPort == 0 {
		cfg.BindPort = 8080
	}
	if cfg.Path == "" {
		cfg.Path = "/shapeshifter/api/v3/message"
	}
	if cfg.NumInboundThreads == 0 {
		cfg.NumInboundThreads = 10
	}
	if cfg.NumOutboundThreads == 0 {
		cfg.NumOutboundThreads = 10
	}
	if cfg.NumDeliveryAttempts == 0 {
		cfg.NumDeliveryAttempts = 5
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.ExponentialRetryFactor == 0 {
		cfg.ExponentialRetryFactor = 2
	}
	if cfg.ExponentialRetryBase == 0 {
		cfg.ExponentialRetryBase = 30
	}
	if cfg.OAuth.RefreshAhead == 0 {
		cfg.OAuth.RefreshAhead = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "0.0.0.0"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Health.Path == "" {
		cfg.Health.Path = "/healthz"
	}
}

// Validate checks the fields a service cannot run without. Mirrors the
// teacher's config.Validate shape: a flat slice of field errors joined into
// one error.
func (c *Config) Validate() error {
	var problems []string
	if c.SenderDomain == "" {
		problems = append(problems, "sender_domain is required")
	}
	if c.SigningKey == "" {
		problems = append(problems, "signing_key is required")
	}
	if !c.Role.Valid() {
		problems = append(problems, fmt.Sprintf("role %q is not one of AGR, DSO, CRO", c.Role))
	}
	if c.BindPort <= 0 || c.BindPort > 65535 {
		problems = append(problems, fmt.Sprintf("bind_port %d is out of range", c.BindPort))
	}
	if c.NumInboundThreads <= 0 {
		problems = append(problems, "num_inbound_threads must be positive")
	}
	if c.NumOutboundThreads <= 0 {
		problems = append(problems, "num_outbound_threads must be positive")
	}
	if c.NumDeliveryAttempts <= 0 {
		problems = append(problems, "num_delivery_attempts must be positive")
	}
	if c.ExponentialRetryFactor <= 1 {
		problems = append(problems, "exponential_retry_factor must be greater than 1")
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidationError reports every field-level problem found by Validate at
// once, rather than failing on the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	msg := "invalid configuration:"
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}
