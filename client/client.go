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

// Package client implements the outbound half of a Shapeshifter
// participant: sealing and POSTing a business message to a peer, parsing
// and unsealing its asynchronous functional response, and a retry queue
// with exponential backoff for deliveries that fail transiently. Grounded
// on original_source/.../client/base_client.py's ShapeshifterClient.
package client

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/usef-uftp/shapeshifter-go/discovery"
	"github.com/usef-uftp/shapeshifter-go/envelope"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/oauth"
)

// DefaultRequestTimeout bounds a single outbound HTTP round trip.
const DefaultRequestTimeout = 30 * time.Second

// Peer is everything a Base client needs to know to reach one specific
// counterparty, corresponding to the constructor arguments of
// ShapeshifterClient: a domain to address, and optional static overrides
// for the endpoint URL and public key that would otherwise be resolved
// via DNS.
type Peer struct {
	Domain       string
	Role         message.Role
	Endpoint     string            // overrides discovery.Resolver.Endpoint when set
	SigningKey   ed25519.PublicKey // overrides discovery.Resolver.Keys when set
	OAuthManager *oauth.Manager    // nil disables bearer-token attachment
}

// Base is the shared machinery behind every role-pair client
// (AgrDsoClient, DsoAgrClient, and so on): it fills in the PayloadMessage
// framework fields, seals, sends, and unseals the asynchronous response.
type Base struct {
	SenderDomain string
	SenderRole   message.Role
	SigningKey   ed25519.PrivateKey

	Resolver       *discovery.Resolver
	HTTPClient     *http.Client
	RequestTimeout time.Duration

	log logger.Logger
}

// NewBase builds a Base client. resolver may be nil if every Peer passed
// to Send supplies a static Endpoint and SigningKey.
func NewBase(senderDomain string, senderRole message.Role, signingKey ed25519.PrivateKey, resolver *discovery.Resolver) *Base {
	return &Base{
		SenderDomain:   senderDomain,
		SenderRole:     senderRole,
		SigningKey:     signingKey,
		Resolver:       resolver,
		HTTPClient:     &http.Client{Timeout: DefaultRequestTimeout},
		RequestTimeout: DefaultRequestTimeout,
		log:            logger.GetDefaultLogger(),
	}
}

// Send fills in msg's common PayloadMessage fields, seals it, POSTs it to
// peer, and, when the peer answers with a non-empty body, unseals that
// synchronous acknowledgement into the business PayloadMessageResponse it
// carries; an empty HTTP 200 response yields (nil, nil). Per spec.md §2's
// asynchronous model, this response only confirms the message was
// accepted for processing — the actual functional outcome (Accepted or
// Rejected) arrives later via the caller's own service endpoint. A
// non-2xx HTTP response or any transport-level failure is returned as a
// *TransportError or plain error, never as a functional rejection.
func (b *Base) Send(ctx context.Context, peer Peer, msg interface{}) (interface{}, error) {
	message.SetFrame(msg, message.DefaultVersion, b.SenderDomain, peer.Domain,
		time.Now().UTC().Format(time.RFC3339), uuid.NewString(), uuid.NewString())

	kind := message.KindOf(msg)
	b.log.Info("sending message", logger.String("kind", kind), logger.String("recipient_domain", peer.Domain))

	sealed, err := envelope.Seal(msg, b.SenderDomain, b.SenderRole, b.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("client: sealing %s: %w", kind, err)
	}
	body, err := envelope.ToXML(sealed)
	if err != nil {
		return nil, fmt.Errorf("client: encoding sealed %s: %w", kind, err)
	}

	endpoint, err := b.resolveEndpoint(ctx, peer)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	if peer.OAuthManager != nil {
		header, err := peer.OAuthManager.AuthorizationHeader(ctx)
		if err != nil {
			return nil, fmt.Errorf("client: obtaining bearer token: %w", err)
		}
		if header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client: request to %s was not successful: HTTP %d: %s",
			endpoint, resp.StatusCode, string(respBody))
	}
	if len(respBody) == 0 {
		return nil, nil
	}

	sealedResponse, err := envelope.FromXML(respBody)
	if err != nil {
		return nil, err
	}

	publicKey, err := b.resolveSigningKey(ctx, peer)
	if err != nil {
		return nil, err
	}
	return envelope.Unseal(sealedResponse, publicKey)
}

func (b *Base) resolveEndpoint(ctx context.Context, peer Peer) (string, error) {
	if peer.Endpoint != "" {
		return peer.Endpoint, nil
	}
	if b.Resolver == nil {
		return "", fmt.Errorf("client: no endpoint configured for %s and no discovery resolver available", peer.Domain)
	}
	return b.Resolver.Endpoint(ctx, peer.Domain, peer.Role)
}

func (b *Base) resolveSigningKey(ctx context.Context, peer Peer) (ed25519.PublicKey, error) {
	if len(peer.SigningKey) > 0 {
		return peer.SigningKey, nil
	}
	if b.Resolver == nil {
		return nil, fmt.Errorf("client: no signing key configured for %s and no discovery resolver available", peer.Domain)
	}
	keys, err := b.Resolver.Keys(ctx, peer.Domain, peer.Role)
	if err != nil {
		return nil, err
	}
	return keys.SigningKey, nil
}

// recordOutcome is a small helper shared by Base.Send callers (the retry
// Queue) to keep the outbound-attempt metric's label set in one place.
func recordOutcome(kind, outcome string) {
	metrics.OutboundAttemptsTotal.WithLabelValues(kind, outcome).Inc()
}
