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
	"os"
	"regexp"
	"strconv"
	"time"
)

// envVarPattern matches ${VAR} and ${VAR:default} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:([^}]*))?\}`)

// SubstituteEnvVars expands every ${VAR} / ${VAR:default} placeholder in
// input against the process environment.
func SubstituteEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, def := groups[1], groups[3]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	})
}

// GetEnvironment reports the active deployment environment, defaulting to
// "development" when neither UFTP_ENV nor ENVIRONMENT is set.
func GetEnvironment() string {
	if v := os.Getenv("UFTP_ENV"); v != "" {
		return v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		return v
	}
	return "development"
}

func IsProduction() bool  { return GetEnvironment() == "production" }
func IsDevelopment() bool { return GetEnvironment() == "development" }

// applyEnvironmentOverrides lets a handful of process environment variables
// win over whatever the YAML file and its ${VAR} substitutions produced —
// the knobs an operator is most likely to set directly rather than via a
// checked-in file.
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("UFTP_SENDER_DOMAIN"); v != "" {
		cfg.SenderDomain = v
	}
	if v := os.Getenv("UFTP_ROLE"); v != "" {
		cfg.Role = normalizeRole(v)
	}
	if v := os.Getenv("UFTP_SIGNING_KEY"); v != "" {
		cfg.SigningKey = v
	}
	if v := os.Getenv("UFTP_BIND_HOST"); v != "" {
		cfg.BindHost = v
	}
	if v := os.Getenv("UFTP_BIND_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.BindPort = p
		}
	}
	if v := os.Getenv("UFTP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("UFTP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("UFTP_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("UFTP_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("UFTP_OAUTH_TOKEN_URL"); v != "" {
		cfg.OAuth.TokenURL = v
	}
	if v := os.Getenv("UFTP_OAUTH_CLIENT_ID"); v != "" {
		cfg.OAuth.ClientID = v
	}
	if v := os.Getenv("UFTP_OAUTH_CLIENT_SECRET"); v != "" {
		cfg.OAuth.ClientSecret = v
	}
}
