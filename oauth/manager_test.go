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

package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeaderUnconfiguredReturnsEmpty(t *testing.T) {
	m := NewManager(Config{})
	assert.False(t, m.Configured())

	header, err := m.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestAuthorizationHeaderObtainsAndCachesToken(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "agr-client", r.FormValue("client_id"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	m := NewManager(Config{
		TokenEndpoint: srv.URL,
		ClientID:      "agr-client",
		ClientSecret:  "secret",
	})

	header, err := m.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", header)

	header2, err := m.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, header, header2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))
}

func TestAuthorizationHeaderRefreshesWhenExpiryWithinBuffer(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	m := NewManager(Config{TokenEndpoint: srv.URL, ClientID: "id", ClientSecret: "secret"})
	_, err := m.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&requests))

	// Force the cached token to look like it's about to expire.
	m.mu.Lock()
	m.expiresAt = m.expiresAt.Add(-time.Hour)
	m.mu.Unlock()

	_, err = m.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&requests))
}

func TestObtainTokenPropagatesNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewManager(Config{TokenEndpoint: srv.URL, ClientID: "id", ClientSecret: "secret"})
	_, err := m.AuthorizationHeader(context.Background())
	assert.Error(t, err)
}
