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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("UFTP_TEST_DOMAIN", "agr.example.com")

	assert.Equal(t, "agr.example.com", SubstituteEnvVars("${UFTP_TEST_DOMAIN}"))
	assert.Equal(t, "fallback", SubstituteEnvVars("${UFTP_TEST_MISSING:fallback}"))
	assert.Equal(t, "", SubstituteEnvVars("${UFTP_TEST_MISSING}"))
	assert.Equal(t, "https://agr.example.com/message",
		SubstituteEnvVars("https://${UFTP_TEST_DOMAIN}/message"))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("UFTP_ENV", "")
	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "development", GetEnvironment())

	t.Setenv("ENVIRONMENT", "staging")
	assert.Equal(t, "staging", GetEnvironment())

	t.Setenv("UFTP_ENV", "production")
	assert.Equal(t, "production", GetEnvironment())
	assert.True(t, IsProduction())
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("UFTP_SENDER_DOMAIN", "dso.example.com")
	t.Setenv("UFTP_ROLE", "dso")
	t.Setenv("UFTP_BIND_PORT", "9443")
	t.Setenv("UFTP_LOG_LEVEL", "debug")

	cfg := &Config{}
	setDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	assert.Equal(t, "dso.example.com", cfg.SenderDomain)
	assert.Equal(t, "DSO", string(cfg.Role))
	assert.Equal(t, 9443, cfg.BindPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
