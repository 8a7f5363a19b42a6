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
	"math"
	"time"

	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
)

// DefaultNumOutboundWorkers and DefaultNumDeliveryAttempts match
// ShapeshifterClient's class attributes num_outgoing_workers and
// num_delivery_attempts.
const (
	DefaultNumOutboundWorkers  = 10
	DefaultNumDeliveryAttempts = 10
)

// DefaultExponentialRetryFactor and DefaultExponentialRetryBase match the
// original's exponential_retry_factor (1) and exponential_retry_base (2):
// the Nth retry is delayed factor * base^attempt seconds.
const (
	DefaultExponentialRetryFactor = 1.0
	DefaultExponentialRetryBase   = 2.0
)

// Callback receives the unsealed response of a successful queued
// delivery. It is never invoked when every retry attempt is exhausted —
// ShapeshifterClient._outgoing_worker only calls callback(response) in
// its success branch, and spec.md §4.4 has the queue log and drop after
// the final attempt instead.
type Callback func(response interface{})

type job struct {
	peer     Peer
	msg      interface{}
	callback Callback
	attempt  int
}

// Queue retries failed deliveries with exponential backoff across a
// bounded pool of worker goroutines, the same division of labour as
// ShapeshifterClient's outgoing_queue/_outgoing_worker/scheduler trio —
// a worker pool draining a channel, with one time.AfterFunc timer per
// failed attempt standing in for Python's sched.scheduler thread: when the
// backoff delay elapses, the timer puts the job back on the channel.
type Queue struct {
	base *Base

	NumWorkers             int
	NumDeliveryAttempts    int
	ExponentialRetryFactor float64
	ExponentialRetryBase   float64

	jobs chan job
	log  logger.Logger
}

// NewQueue builds a Queue bound to base, applying the retry-related
// defaults ShapeshifterClient uses.
func NewQueue(base *Base) *Queue {
	q := &Queue{
		base:                   base,
		NumWorkers:             DefaultNumOutboundWorkers,
		NumDeliveryAttempts:    DefaultNumDeliveryAttempts,
		ExponentialRetryFactor: DefaultExponentialRetryFactor,
		ExponentialRetryBase:   DefaultExponentialRetryBase,
		jobs:                   make(chan job, 1024),
		log:                    logger.GetDefaultLogger(),
	}
	return q
}

// Start launches the worker pool. It must be called once before Enqueue.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.NumWorkers; i++ {
		go q.worker(ctx)
	}
}

// Enqueue schedules msg for delivery to peer, invoking callback with the
// response once a delivery attempt succeeds. Delivery happens
// asynchronously; Enqueue never blocks on the network.
func (q *Queue) Enqueue(peer Peer, msg interface{}, callback Callback) {
	metrics.OutboundQueueDepth.Inc()
	q.jobs <- job{peer: peer, msg: msg, callback: callback, attempt: 1}
}

func (q *Queue) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-q.jobs:
			q.process(ctx, j)
		}
	}
}

func (q *Queue) process(ctx context.Context, j job) {
	kind := message.KindOf(j.msg)
	start := time.Now()
	resp, err := q.base.Send(ctx, j.peer, j.msg)
	if err == nil {
		metrics.OutboundQueueDepth.Dec()
		metrics.OutboundLatencySeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		recordOutcome(kind, "ok")
		q.runCallback(j, resp)
		return
	}

	if j.attempt >= q.NumDeliveryAttempts {
		metrics.OutboundQueueDepth.Dec()
		recordOutcome(kind, "abandoned")
		q.log.Error("could not deliver message, attempts exhausted",
			logger.String("kind", kind),
			logger.String("recipient_domain", j.peer.Domain),
			logger.Int("attempts", j.attempt),
			logger.Error(err))
		return
	}

	delay := q.backoff(j.attempt)
	recordOutcome(kind, "retry")
	q.log.Warn("delivery failed, scheduling retry",
		logger.String("kind", kind),
		logger.String("recipient_domain", j.peer.Domain),
		logger.Int("attempt", j.attempt),
		logger.Duration("delay", delay),
		logger.Error(err))

	next := j
	next.attempt++
	time.AfterFunc(delay, func() {
		select {
		case <-ctx.Done():
		case q.jobs <- next:
		}
	})
}

// backoff returns factor * base^attempt as a time.Duration in seconds,
// matching ShapeshifterClient._outgoing_worker's delay_time computation.
func (q *Queue) backoff(attempt int) time.Duration {
	seconds := q.ExponentialRetryFactor * math.Pow(q.ExponentialRetryBase, float64(attempt))
	return time.Duration(seconds * float64(time.Second))
}

func (q *Queue) runCallback(j job, resp interface{}) {
	if j.callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("panic in outbound delivery callback", logger.Any("recover", r))
		}
	}()
	j.callback(resp)
}
