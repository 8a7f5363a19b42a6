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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadPrefersEnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "sender_domain: default.example.com\nsigning_key: c2VjcmV0\nrole: AGR\n")
	writeFile(t, dir, "production.yaml", "sender_domain: prod.example.com\nsigning_key: c2VjcmV0\nrole: AGR\n")

	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "production"})
	require.NoError(t, err)
	assert.Equal(t, "prod.example.com", cfg.SenderDomain)
}

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "sender_domain: default.example.com\nsigning_key: c2VjcmV0\nrole: DSO\n")

	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "staging"})
	require.NoError(t, err)
	assert.Equal(t, "default.example.com", cfg.SenderDomain)
	assert.Equal(t, 8080, cfg.BindPort)
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "sender_domain: ${UFTP_LOADER_TEST_DOMAIN}\nsigning_key: c2VjcmV0\nrole: CRO\n")
	t.Setenv("UFTP_LOADER_TEST_DOMAIN", "cro.example.com")

	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "development"})
	require.NoError(t, err)
	assert.Equal(t, "cro.example.com", cfg.SenderDomain)
}

func TestLoadFailsValidationWithoutSenderDomain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "signing_key: c2VjcmV0\nrole: AGR\n")

	_, err := Load(LoaderOptions{ConfigDir: dir, Environment: "development"})
	assert.Error(t, err)
}

func TestLoadSkipValidation(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "development", SkipValidation: true})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.SenderDomain)
}
