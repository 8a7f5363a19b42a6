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
	"sync"

	"github.com/usef-uftp/shapeshifter-go/message"
)

// Resolver looks up the client-credentials configuration to use for a
// given peer, corresponding to spec.md §6.3's optional
// `oauth_resolver(domain, role) -> OAuthConfig` override.
type Resolver func(domain string, role message.Role) Config

// Static returns a Resolver that applies the same Config to every peer —
// the common case of one OAuth2 authorization server shared across a
// participant's whole counterparty set.
func Static(cfg Config) Resolver {
	return func(string, message.Role) Config { return cfg }
}

// ManagerCache lazily builds and caches one Manager per (domain, role)
// pair a Resolver is asked about, so repeated sends to the same peer
// reuse its cached token instead of re-authenticating.
type ManagerCache struct {
	resolve Resolver

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewManagerCache builds a ManagerCache backed by the given Resolver.
func NewManagerCache(resolve Resolver) *ManagerCache {
	return &ManagerCache{resolve: resolve, managers: make(map[string]*Manager)}
}

// For returns the Manager for the given peer, creating and caching one on
// first use.
func (c *ManagerCache) For(domain string, role message.Role) *Manager {
	key := string(role) + "|" + domain

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.managers[key]; ok {
		return m
	}
	m := NewManager(c.resolve(domain, role))
	c.managers[key] = m
	return m
}
