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
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usef-uftp/shapeshifter-go/envelope"
	"github.com/usef-uftp/shapeshifter-go/message"
)

func sealedRequest(t *testing.T, msg interface{}, senderDomain string, senderRole message.Role, priv ed25519.PrivateKey) []byte {
	t.Helper()
	sealed, err := envelope.Seal(msg, senderDomain, senderRole, priv)
	require.NoError(t, err)
	body, err := envelope.ToXML(sealed)
	require.NoError(t, err)
	return body
}

func newTestEndpoint(t *testing.T, senderRole message.Role, pub ed25519.PublicKey) (*Endpoint, *Pool, chan interface{}, chan rejectCall) {
	t.Helper()
	accepted := make(chan interface{}, 4)
	pool := NewPool(map[string]Handler{
		"FlexRequest": func(ctx context.Context, msg interface{}) error {
			accepted <- msg
			return nil
		},
	})
	pool.Start(context.Background())

	rejections := make(chan rejectCall, 4)
	reject := func(ctx context.Context, peerDomain string, peerRole message.Role, response interface{}) {
		rejections <- rejectCall{peerDomain: peerDomain, peerRole: peerRole, response: response}
	}

	keyLookup := func(ctx context.Context, domain string, role message.Role) (ed25519.PublicKey, error) {
		return pub, nil
	}

	return NewEndpoint("dso.example.com", senderRole, keyLookup, pool, reject), pool, accepted, rejections
}

type rejectCall struct {
	peerDomain string
	peerRole   message.Role
	response   interface{}
}

func TestServeHTTPAcceptsKnownMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ep, _, accepted, _ := newTestEndpoint(t, message.RoleDSO, pub)

	req := &message.FlexRequest{
		FlexMessage: message.FlexMessage{
			PayloadMessage: message.PayloadMessage{
				SenderDomain:    "agr.example.com",
				RecipientDomain: "dso.example.com",
				MessageID:       "123e4567-e89b-12d3-a456-426614174000",
				ConversationID:  "123e4567-e89b-12d3-a456-426614174001",
			},
			ISPDuration:     "PT15M",
			Period:          "2026-08-01",
			CongestionPoint: "ean.1234567890123",
		},
	}
	body := sealedRequest(t, req, "agr.example.com", message.RoleAGR, priv)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "text/xml; charset=utf-8")
	r.ContentLength = int64(len(body))
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case got := <-accepted:
		fr, ok := got.(*message.FlexRequest)
		require.True(t, ok)
		assert.Equal(t, "agr.example.com", fr.SenderDomain)
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}
}

func TestServeHTTPRejectsMisdirectedKind(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	// A DSO-role endpoint does not accept AGRPortfolioUpdate.
	ep, _, _, rejections := newTestEndpoint(t, message.RoleDSO, pub)

	update := &message.AgrPortfolioUpdate{
		PayloadMessage: message.PayloadMessage{
			SenderDomain:    "agr.example.com",
			RecipientDomain: "dso.example.com",
			MessageID:       "123e4567-e89b-12d3-a456-426614174002",
			ConversationID:  "123e4567-e89b-12d3-a456-426614174003",
		},
	}
	body := sealedRequest(t, update, "agr.example.com", message.RoleAGR, priv)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "text/xml; charset=utf-8")
	r.ContentLength = int64(len(body))
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case rc := <-rejections:
		assert.Equal(t, "agr.example.com", rc.peerDomain)
		resp, ok := rc.response.(*message.AgrPortfolioUpdateResponse)
		require.True(t, ok)
		assert.Equal(t, message.ResultRejected, resp.Result)
		assert.Contains(t, resp.RejectionReason, "Invalid Message")
		assert.Equal(t, update.MessageID, resp.AgrPortfolioUpdateMessageID)
	case <-time.After(time.Second):
		t.Fatal("rejection was never scheduled")
	}
}

func TestServeHTTPRejectsSenderDomainMismatch(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ep, _, _, rejections := newTestEndpoint(t, message.RoleDSO, pub)

	req := &message.FlexRequest{
		FlexMessage: message.FlexMessage{
			PayloadMessage: message.PayloadMessage{
				SenderDomain:    "someone-else.example.com",
				RecipientDomain: "dso.example.com",
				MessageID:       "123e4567-e89b-12d3-a456-426614174004",
				ConversationID:  "123e4567-e89b-12d3-a456-426614174005",
			},
		},
	}
	// Sealed under a different SenderDomain than the inner payload claims.
	body := sealedRequest(t, req, "agr.example.com", message.RoleAGR, priv)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "text/xml; charset=utf-8")
	r.ContentLength = int64(len(body))
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case rc := <-rejections:
		resp, ok := rc.response.(*message.FlexRequestResponse)
		require.True(t, ok)
		assert.Equal(t, "Invalid Sender", resp.RejectionReason)
	case <-time.After(time.Second):
		t.Fatal("rejection was never scheduled")
	}
}

func TestServeHTTPRejectsMissingContentLength(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ep, _, _, _ := newTestEndpoint(t, message.RoleDSO, pub)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(""))
	r.ContentLength = -1
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)
	assert.Equal(t, http.StatusLengthRequired, w.Code)
}

func TestServeHTTPRejectsBadContentType(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ep, _, _, _ := newTestEndpoint(t, message.RoleDSO, pub)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")
	r.ContentLength = 2
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeHTTPRejectsInvalidSignature(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	wrongPub, wrongPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_ = wrongPub

	ep, _, _, _ := newTestEndpoint(t, message.RoleDSO, pub)

	req := &message.FlexRequest{}
	body := sealedRequest(t, req, "agr.example.com", message.RoleAGR, wrongPriv)

	r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "text/xml; charset=utf-8")
	r.ContentLength = int64(len(body))
	w := httptest.NewRecorder()

	ep.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeHTTPConcurrentRequestsDoNotRace(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ep, _, accepted, _ := newTestEndpoint(t, message.RoleDSO, pub)

	var wg sync.WaitGroup
	const n = 20
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := &message.FlexRequest{
				FlexMessage: message.FlexMessage{
					PayloadMessage: message.PayloadMessage{
						SenderDomain:    "agr.example.com",
						RecipientDomain: "dso.example.com",
					},
				},
			}
			body := sealedRequest(t, req, "agr.example.com", message.RoleAGR, priv)
			r := httptest.NewRequest(http.MethodPost, "/shapeshifter/api/v3/message", strings.NewReader(string(body)))
			r.Header.Set("Content-Type", "text/xml; charset=utf-8")
			r.ContentLength = int64(len(body))
			w := httptest.NewRecorder()
			ep.ServeHTTP(w, r)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		select {
		case <-accepted:
		case <-time.After(2 * time.Second):
			t.Fatalf("only received %d of %d accepted messages", i, n)
		}
	}
}
