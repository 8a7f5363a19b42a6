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

package service

import (
	"context"
	"crypto/ed25519"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/usef-uftp/shapeshifter-go/envelope"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/routing"
)

// KeyLookup resolves the Ed25519 public key a sender of the given domain
// and role signs its outgoing envelopes with, overriding DNS-based
// discovery the same way ShapeshifterService's key_lookup_function
// constructor argument does.
type KeyLookup func(ctx context.Context, domain string, role message.Role) (ed25519.PublicKey, error)

// Rejector asynchronously delivers a functional-rejection response back
// to the peer that sent the rejected request, standing in for
// ShapeshifterService._get_client plus client._send_message.
type Rejector func(ctx context.Context, peerDomain string, peerRole message.Role, response interface{})

// Endpoint is the single HTTP route every Shapeshifter participant
// exposes, grounded on ShapeshifterService._receive_message.
type Endpoint struct {
	SenderDomain string
	SenderRole   message.Role

	KeyLookup KeyLookup
	Pool      *Pool
	Reject    Rejector

	log logger.Logger
}

// NewEndpoint builds an Endpoint. pool must already be Start-ed.
func NewEndpoint(senderDomain string, senderRole message.Role, keyLookup KeyLookup, pool *Pool, reject Rejector) *Endpoint {
	return &Endpoint{
		SenderDomain: senderDomain,
		SenderRole:   senderRole,
		KeyLookup:    keyLookup,
		Pool:         pool,
		Reject:       reject,
		log:          logger.GetDefaultLogger(),
	}
}

// ServeHTTP implements http.Handler. It mirrors _receive_message: a
// malformed transport envelope ends the request with its mapped status
// code immediately. Anything that unseals successfully acknowledges 200
// right away and continues asynchronously -- a rejected message is
// delivered to the sender later via Reject, an accepted one is handed to
// Pool. The caller never learns the functional outcome from this
// response.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.ContentLength < 0 {
		e.writeTransportError(w, envelope.ErrMissingContentLength())
		return
	}
	ct := r.Header.Get("Content-Type")
	if mediaType, params, err := mime.ParseMediaType(ct); err != nil || mediaType != "text/xml" ||
		(params["charset"] != "" && !strings.EqualFold(params["charset"], "utf-8")) {
		e.writeTransportError(w, envelope.ErrInvalidContentType(ct))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		e.writeTransportError(w, envelope.ErrSchema(err.Error()))
		return
	}

	sm, err := envelope.FromXML(body)
	if err != nil {
		e.writeTransportError(w, err)
		return
	}

	e.log.Info("received signed message",
		logger.String("sender_domain", sm.SenderDomain), logger.String("sender_role", string(sm.SenderRole)))

	publicKey, err := e.KeyLookup(ctx, sm.SenderDomain, sm.SenderRole)
	if err != nil {
		e.writeTransportError(w, envelope.ErrAuthenticationTimeout(err.Error()))
		return
	}

	unsealed, err := envelope.Unseal(sm, publicKey)
	if err != nil {
		e.writeTransportError(w, err)
		return
	}

	kind := message.KindOf(unsealed)
	metrics.InboundMessagesTotal.WithLabelValues(string(e.SenderRole), kind).Inc()

	if ferr := e.validate(sm, unsealed); ferr != nil {
		metrics.InboundRejectionsTotal.WithLabelValues(string(e.SenderRole), kind, ferr.RejectionReason()).Inc()
		e.scheduleRejection(ctx, sm, unsealed, ferr)
		w.WriteHeader(http.StatusOK)
		return
	}

	e.Pool.Submit(unsealed)
	w.WriteHeader(http.StatusOK)
}

// validate runs the checks base_service performs between unsealing a
// message and handing it to the inbound pool: the envelope's
// sender_domain must match the inner message's, and the message's kind
// must be one this role accepts.
func (e *Endpoint) validate(sm *envelope.SignedMessage, unsealed interface{}) *FunctionalError {
	frame, ok := message.Frame(unsealed)
	if !ok {
		return ErrInvalidMessage(message.KindOf(unsealed))
	}
	if frame.SenderDomain != sm.SenderDomain {
		e.log.Warn("sender_domain mismatch between envelope and payload",
			logger.String("envelope_sender_domain", sm.SenderDomain),
			logger.String("payload_sender_domain", frame.SenderDomain))
		return ErrInvalidSender()
	}
	kind := message.KindOf(unsealed)
	if !routing.Acceptable(e.SenderRole, kind) {
		e.log.Warn("received a misdirected message", logger.String("kind", kind), logger.String("sender_domain", sm.SenderDomain))
		return ErrInvalidMessage(kind)
	}
	return nil
}

func (e *Endpoint) scheduleRejection(ctx context.Context, sm *envelope.SignedMessage, unsealed interface{}, ferr *FunctionalError) {
	if e.Reject == nil {
		return
	}
	response, err := buildRejection(sm.SenderDomain, unsealed, ferr.RejectionReason())
	if err != nil {
		e.log.Error("could not build rejection response", logger.Error(err))
		return
	}
	e.Reject(ctx, sm.SenderDomain, sm.SenderRole, response)
}

func (e *Endpoint) writeTransportError(w http.ResponseWriter, err error) {
	var te *envelope.TransportError
	if errors.As(err, &te) {
		metrics.TransportErrorsTotal.WithLabelValues(strconv.Itoa(te.Status())).Inc()
		e.log.Warn("rejecting malformed inbound request", logger.Int("status", te.Status()), logger.Error(te))
		http.Error(w, te.Error(), te.Status())
		return
	}
	e.log.Error("unexpected error handling inbound request", logger.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
