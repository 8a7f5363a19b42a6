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

package client

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usef-uftp/shapeshifter-go/message"
)

func newTestQueue(t *testing.T, endpoint string) *Queue {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	base := NewBase("agr.example.com", message.RoleAGR, priv, nil)
	q := NewQueue(base)
	q.NumWorkers = 1
	q.NumDeliveryAttempts = 3
	q.ExponentialRetryFactor = 0.01
	q.ExponentialRetryBase = 1
	_ = endpoint
	return q
}

func TestQueueInvokesCallbackOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := newTestQueue(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var called int32
	done := make(chan struct{})
	q.Enqueue(Peer{Domain: "dso.example.com", Role: message.RoleDSO, Endpoint: srv.URL}, &message.FlexOffer{}, func(response interface{}) {
		atomic.AddInt32(&called, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never invoked")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&called))
}

func TestQueueRetriesTransientFailureThenSucceeds(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := newTestQueue(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	done := make(chan struct{})
	var callCount int32
	q.Enqueue(Peer{Domain: "dso.example.com", Role: message.RoleDSO, Endpoint: srv.URL}, &message.FlexOffer{}, func(response interface{}) {
		atomic.AddInt32(&callCount, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never invoked after transient failures recovered")
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
	assert.EqualValues(t, 1, atomic.LoadInt32(&callCount))
}

// TestQueueDropsWithoutCallbackAfterAttemptsExhausted confirms spec.md
// §4.4's "after N attempts, log and drop": once every retry is spent, the
// caller's callback must never fire, matching
// ShapeshifterClient._outgoing_worker, which only calls callback(response)
// on success.
func TestQueueDropsWithoutCallbackAfterAttemptsExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := newTestQueue(t, srv.URL)
	q.NumDeliveryAttempts = 2
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var mu sync.Mutex
	invoked := false
	q.Enqueue(Peer{Domain: "dso.example.com", Role: message.RoleDSO, Endpoint: srv.URL}, &message.FlexOffer{}, func(response interface{}) {
		mu.Lock()
		invoked = true
		mu.Unlock()
	})

	// Give the queue well past the time it needs to exhaust both attempts
	// and their backoff delays.
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, invoked, "callback must not be invoked once retries are exhausted")
}

func TestQueueEnqueueWithNilCallbackDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := newTestQueue(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(Peer{Domain: "dso.example.com", Role: message.RoleDSO, Endpoint: srv.URL}, &message.FlexOffer{}, nil)
	time.Sleep(100 * time.Millisecond)
}

func TestQueueBackoffGrowsExponentially(t *testing.T) {
	q := &Queue{ExponentialRetryFactor: 2, ExponentialRetryBase: 2}
	assert.Equal(t, 4*time.Second, q.backoff(1))
	assert.Equal(t, 8*time.Second, q.backoff(2))
	assert.Equal(t, 16*time.Second, q.backoff(3))
}
