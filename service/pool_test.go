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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/usef-uftp/shapeshifter-go/message"
)

func TestPoolDispatchesToRegisteredHandler(t *testing.T) {
	var mu sync.Mutex
	var got *message.FlexRequest

	pool := NewPool(map[string]Handler{
		"FlexRequest": func(ctx context.Context, msg interface{}) error {
			mu.Lock()
			defer mu.Unlock()
			got = msg.(*message.FlexRequest)
			return nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	pool.Submit(&message.FlexRequest{FlexMessage: message.FlexMessage{PayloadMessage: message.PayloadMessage{MessageID: "abc"}}})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := got != nil
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil {
		t.Fatal("handler was never invoked")
	}
	if got.MessageID != "abc" {
		t.Fatalf("got MessageID %q, want %q", got.MessageID, "abc")
	}
}

func TestPoolSurvivesHandlerPanic(t *testing.T) {
	processed := make(chan struct{}, 2)
	pool := NewPool(map[string]Handler{
		"FlexRequest": func(ctx context.Context, msg interface{}) error {
			processed <- struct{}{}
			panic("boom")
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	pool.Submit(&message.FlexRequest{})
	pool.Submit(&message.FlexRequest{})

	for i := 0; i < 2; i++ {
		select {
		case <-processed:
		case <-time.After(time.Second):
			t.Fatalf("only processed %d of 2 jobs before a worker appeared to die", i)
		}
	}
}

func TestPoolIgnoresUnhandledKind(t *testing.T) {
	pool := NewPool(map[string]Handler{
		"FlexRequest": func(ctx context.Context, msg interface{}) error {
			return errors.New("should never run")
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	// AgrPortfolioQuery has no registered handler; Submit must not block
	// or panic.
	pool.Submit(&message.AgrPortfolioQuery{})
	time.Sleep(50 * time.Millisecond)
}
