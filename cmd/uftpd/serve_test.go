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

package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usef-uftp/shapeshifter-go/config"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/message"
)

func testConfig(t *testing.T, role message.Role) *config.Config {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &config.Config{
		SenderDomain:           "dso.example.com",
		Role:                   role,
		SigningKey:             base64.StdEncoding.EncodeToString(priv),
		BindHost:               "127.0.0.1",
		BindPort:               8080,
		Path:                   "/shapeshifter/api/v3/message",
		NumInboundThreads:      2,
		NumOutboundThreads:     2,
		NumDeliveryAttempts:    3,
		RequestTimeout:         time.Second,
		ExponentialRetryFactor: 2,
		ExponentialRetryBase:   1,
	}
}

func TestBuildParticipantDispatchesByRole(t *testing.T) {
	log := logger.GetDefaultLogger()
	resolve := oauthResolverFromConfig(config.OAuthConfig{})

	for _, role := range []message.Role{message.RoleAGR, message.RoleDSO, message.RoleCRO} {
		cfg := testConfig(t, role)
		p, handler, err := buildParticipant(cfg, log, resolve)
		require.NoError(t, err)
		assert.NotNil(t, p)
		assert.NotNil(t, handler)
		assert.Equal(t, role, p.Role)
	}
}

func TestBuildParticipantRejectsUnknownRole(t *testing.T) {
	cfg := testConfig(t, message.Role("XYZ"))
	_, _, err := buildParticipant(cfg, logger.GetDefaultLogger(), oauthResolverFromConfig(config.OAuthConfig{}))
	assert.Error(t, err)
}

func TestOauthResolverFromConfigProducesUnconfiguredManagerWhenEmpty(t *testing.T) {
	resolve := oauthResolverFromConfig(config.OAuthConfig{})
	cfg := resolve("peer.example.com", message.RoleDSO)
	assert.Empty(t, cfg.TokenEndpoint)
}

func TestBuildHealthHandlerServesJSON(t *testing.T) {
	cfg := testConfig(t, message.RoleDSO)
	cfg.Health.Enabled = true
	cfg.Health.Path = "/healthz"

	p, _, err := buildParticipant(cfg, logger.GetDefaultLogger(), oauthResolverFromConfig(cfg.OAuth))
	require.NoError(t, err)

	handler := buildHealthHandler(cfg, p)
	assert.NotNil(t, handler)
}
