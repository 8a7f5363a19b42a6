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

// Package oauth manages OAuth2 client-credentials bearer tokens for
// outbound Shapeshifter requests. Grounded on
// original_source/.../token_manager.py's AuthTokenManager: a lazily
// obtained token cached until it falls within a refresh buffer of
// expiring, guarded so concurrent callers share one in-flight refresh.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
)

// DefaultRequestTimeout bounds a single token-endpoint round trip.
const DefaultRequestTimeout = 30 * time.Second

// DefaultRefreshBuffer is how long before actual expiry a cached token is
// treated as already expired, to avoid racing the token endpoint's clock.
const DefaultRefreshBuffer = 30 * time.Second

// Config is the client-credentials configuration for one peer. A zero
// value (empty TokenEndpoint) means OAuth2 is not configured for that
// peer, and Manager.AuthorizationHeader returns no header at all.
type Config struct {
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	Scope         string
	RefreshBuffer time.Duration
}

func (c Config) configured() bool {
	return c.TokenEndpoint != "" && c.ClientID != "" && c.ClientSecret != ""
}

// Manager obtains and caches a single bearer token for one peer's
// client-credentials configuration. It is safe for concurrent use; a
// refresh in flight is shared by every caller that arrives while it is
// pending.
type Manager struct {
	cfg            Config
	requestTimeout time.Duration
	httpClient     *http.Client
	log            logger.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewManager builds a Manager for the given client-credentials config.
func NewManager(cfg Config) *Manager {
	if cfg.RefreshBuffer == 0 {
		cfg.RefreshBuffer = DefaultRefreshBuffer
	}
	return &Manager{
		cfg:            cfg,
		requestTimeout: DefaultRequestTimeout,
		httpClient:     &http.Client{Timeout: DefaultRequestTimeout},
		log:            logger.GetDefaultLogger(),
	}
}

// Configured reports whether this manager has a usable client-credentials
// configuration.
func (m *Manager) Configured() bool {
	return m.cfg.configured()
}

// AuthorizationHeader returns the value for an outbound Authorization
// header ("Bearer <token>"), refreshing the cached token if it is absent
// or within the refresh buffer of expiring. It returns ("", nil) when
// OAuth2 is not configured for this peer — the caller simply omits the
// header.
func (m *Manager) AuthorizationHeader(ctx context.Context) (string, error) {
	if !m.cfg.configured() {
		return "", nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.tokenValidLocked() {
		m.log.Debug("oauth token invalid or expired, obtaining new token",
			logger.String("token_endpoint", m.cfg.TokenEndpoint))
		token, expiresIn, err := m.obtainToken(ctx)
		if err != nil {
			metrics.OAuthTokenRefreshesTotal.WithLabelValues("error").Inc()
			return "", err
		}
		m.accessToken = token
		m.expiresAt = time.Now().Add(expiresIn)
		metrics.OAuthTokenRefreshesTotal.WithLabelValues("ok").Inc()
		m.log.Info("obtained oauth token", logger.String("expires_at", m.expiresAt.Format(time.RFC3339)))
	}
	return "Bearer " + m.accessToken, nil
}

func (m *Manager) tokenValidLocked() bool {
	if m.accessToken == "" || m.expiresAt.IsZero() {
		return false
	}
	return m.expiresAt.After(time.Now().Add(m.cfg.RefreshBuffer))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// obtainToken performs the client-credentials grant against the
// configured token endpoint.
func (m *Manager) obtainToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)
	if m.cfg.Scope != "" {
		form.Set("scope", m.cfg.Scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, logger.NewOperationalError(logger.ErrCodeOAuthError, "building token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, logger.NewOperationalError(logger.ErrCodeOAuthError, "token request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, logger.NewOperationalError(logger.ErrCodeOAuthError,
			fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), nil)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, logger.NewOperationalError(logger.ErrCodeOAuthError, "decoding token response", err)
	}
	if tr.AccessToken == "" {
		return "", 0, logger.NewOperationalError(logger.ErrCodeOAuthError, "token response missing access_token", nil)
	}
	expiresIn := tr.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 300
	}
	return tr.AccessToken, time.Duration(expiresIn) * time.Second, nil
}
