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

	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
)

// DefaultNumInboundWorkers matches ShapeshifterService's
// num_inbound_threads class attribute.
const DefaultNumInboundWorkers = 10

// Handler processes one accepted inbound message outside the request
// context, mirroring a service subclass's process_<kind> method.
type Handler func(ctx context.Context, msg interface{}) error

// Pool is the bounded inbound worker pool ShapeshifterService builds from
// a ThreadPoolExecutor: accepted messages are handed off here so the HTTP
// handler can return 200 immediately.
type Pool struct {
	NumWorkers int

	handlers map[string]Handler
	jobs     chan interface{}
	log      logger.Logger
}

// NewPool builds an inbound Pool with the given handler registry, keyed
// by wire kind name.
func NewPool(handlers map[string]Handler) *Pool {
	return &Pool{
		NumWorkers: DefaultNumInboundWorkers,
		handlers:   handlers,
		jobs:       make(chan interface{}, 1024),
		log:        logger.GetDefaultLogger(),
	}
}

// Start launches the worker pool. It must be called once before Submit.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.NumWorkers; i++ {
		go p.worker(ctx)
	}
}

// Submit hands an already-unsealed, already-validated message off for
// asynchronous processing. It never blocks on the handler itself.
func (p *Pool) Submit(msg interface{}) {
	metrics.InboundPoolDepth.Inc()
	p.jobs <- msg
}

func (p *Pool) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-p.jobs:
			p.process(ctx, msg)
		}
	}
}

func (p *Pool) process(ctx context.Context, msg interface{}) {
	defer metrics.InboundPoolDepth.Dec()
	kind := message.KindOf(msg)

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic while processing inbound message",
				logger.String("kind", kind), logger.Any("recover", r))
		}
	}()

	handler, ok := p.handlers[kind]
	if !ok {
		p.log.Debug("no handler registered for message kind, ignoring",
			logger.String("kind", kind))
		return
	}
	if err := handler(ctx, msg); err != nil {
		p.log.Error("handler returned an error while processing inbound message",
			logger.String("kind", kind), logger.Error(err))
	}
}
