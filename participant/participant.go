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

// Package participant assembles the client, service endpoint, discovery
// resolver, and OAuth manager plumbing into one role-aware facade per
// USEF role, grounded on the constructor of
// original_source/.../service/base_service.py's ShapeshifterService plus
// the three concrete role subclasses (agr_service.py, dso_service.py,
// cro_service.py) that fix a role's sender_role and acceptable_messages.
package participant

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/usef-uftp/shapeshifter-go/client"
	"github.com/usef-uftp/shapeshifter-go/config"
	"github.com/usef-uftp/shapeshifter-go/discovery"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/oauth"
	"github.com/usef-uftp/shapeshifter-go/routing"
	"github.com/usef-uftp/shapeshifter-go/service"
)

// HandlerSet maps a wire kind name to the handler that processes it,
// standing in for a concrete service subclass's process_<kind> methods.
type HandlerSet map[string]service.Handler

// Participant is the role-agnostic plumbing shared by Agr, Dso and Cro:
// an outbound client and retry queue, a DNS discovery resolver, an OAuth
// manager cache, and the inbound pool and HTTP endpoint.
type Participant struct {
	Config *config.Config
	Role   message.Role

	Base     *client.Base
	Queue    *client.Queue
	Resolver *discovery.Resolver
	OAuth    *oauth.ManagerCache
	Pool     *service.Pool
	Endpoint *service.Endpoint
}

// New builds the shared plumbing for one participant role. handlers must
// cover every kind routing.AcceptableKinds(cfg.Role) names -- this
// mirrors the @abstractmethod process_* methods a concrete Python service
// subclass is forced to implement before it can be instantiated.
// oauthResolve may be nil, which disables bearer-token attachment on
// every outbound request.
func New(cfg *config.Config, handlers HandlerSet, oauthResolve oauth.Resolver) (*Participant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkHandlerCompleteness(cfg.Role, handlers); err != nil {
		return nil, err
	}

	signingKey, err := decodeSigningKey(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("participant: %w", err)
	}

	if oauthResolve == nil {
		oauthResolve = oauth.Static(oauth.Config{})
	}

	resolver := discovery.NewResolver()
	base := client.NewBase(cfg.SenderDomain, cfg.Role, signingKey, resolver)
	base.RequestTimeout = cfg.RequestTimeout

	queue := client.NewQueue(base)
	queue.NumWorkers = cfg.NumOutboundThreads
	queue.NumDeliveryAttempts = cfg.NumDeliveryAttempts
	queue.ExponentialRetryFactor = cfg.ExponentialRetryFactor
	queue.ExponentialRetryBase = cfg.ExponentialRetryBase

	oauthCache := oauth.NewManagerCache(oauthResolve)
	pool := service.NewPool(handlers)
	pool.NumWorkers = cfg.NumInboundThreads

	keyLookup := func(ctx context.Context, domain string, role message.Role) (ed25519.PublicKey, error) {
		keys, err := resolver.Keys(ctx, domain, role)
		if err != nil {
			return nil, err
		}
		return keys.SigningKey, nil
	}

	p := &Participant{
		Config:   cfg,
		Role:     cfg.Role,
		Base:     base,
		Queue:    queue,
		Resolver: resolver,
		OAuth:    oauthCache,
		Pool:     pool,
	}

	p.Endpoint = service.NewEndpoint(cfg.SenderDomain, cfg.Role, keyLookup, pool, p.reject)
	return p, nil
}

// reject delivers a functional-rejection response to peerDomain through
// the same retry queue every other outbound message uses, standing in
// for _get_client + client._send_message.
func (p *Participant) reject(ctx context.Context, peerDomain string, peerRole message.Role, response interface{}) {
	peer := client.Peer{
		Domain:       peerDomain,
		Role:         peerRole,
		OAuthManager: p.OAuth.For(peerDomain, peerRole),
	}
	p.Queue.Enqueue(peer, response, nil)
}

// Start launches the inbound pool and outbound retry queue's worker
// goroutines. Call once before serving traffic or sending messages.
func (p *Participant) Start(ctx context.Context) {
	p.Pool.Start(ctx)
	p.Queue.Start(ctx)
}

// Handler returns the single HTTP route this participant exposes.
func (p *Participant) Handler() http.Handler {
	return p.Endpoint
}

func roleMismatch(want, got message.Role) error {
	return fmt.Errorf("participant: config role %q does not match %q facade", got, want)
}

func checkHandlerCompleteness(role message.Role, handlers HandlerSet) error {
	var missing []string
	for _, kind := range routing.AcceptableKinds(role) {
		if handlers[kind] == nil {
			missing = append(missing, kind)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("participant: missing handlers for %v", missing)
	}
	return nil
}

// decodeSigningKey accepts a base64-encoded Ed25519 seed (32 bytes) or
// full private key (64 bytes), matching the two forms
// cryptography.hazmat's Ed25519PrivateKey loader accepts in the original
// implementation.
func decodeSigningKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding signing_key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("signing_key must decode to %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// typed adapts a concrete message handler to the untyped service.Handler
// the inbound Pool dispatches on, the Go equivalent of Python's duck
// typing letting process_<kind>(message: ConcreteKind) satisfy the
// dispatcher without a cast.
func typed[T any](fn func(context.Context, *T) error) service.Handler {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, msg interface{}) error {
		return fn(ctx, msg.(*T))
	}
}
