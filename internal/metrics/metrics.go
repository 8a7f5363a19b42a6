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

// Package metrics exposes Prometheus instrumentation for the inbound and
// outbound message pipelines, discovery cache, and OAuth token manager.
// Grounded on the teacher's internal/metrics package shape
// (promauto.With(Registry) against a private registry exported via
// Handler()), re-scoped to UFTP counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "uftp"

// Registry is a private registry rather than the global default, so a
// process embedding this package alongside others doesn't collide on
// metric names.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// InboundMessagesTotal counts every accepted inbound message handed to
	// the business-logic pool, labelled by role and wire kind.
	InboundMessagesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "inbound_messages_total",
		Help:      "Inbound messages accepted by the service endpoint.",
	}, []string{"role", "kind"})

	// InboundRejectionsTotal counts messages the service endpoint rejected,
	// labelled by the functional error that caused the rejection.
	InboundRejectionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "inbound_rejections_total",
		Help:      "Inbound messages that produced a functional rejection.",
	}, []string{"role", "kind", "reason"})

	// TransportErrorsTotal counts requests the service endpoint refused at
	// the transport layer, labelled by the resulting HTTP status.
	TransportErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "transport_errors_total",
		Help:      "Inbound requests rejected before reaching a handler, by HTTP status.",
	}, []string{"status"})

	// InboundPoolDepth reports how many accepted inbound messages have been
	// submitted to the inbound worker pool and not yet finished processing
	// (queued or running in a handler).
	InboundPoolDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "inbound_pool_depth",
		Help:      "Inbound messages submitted to the handler pool and not yet processed.",
	})

	// OutboundAttemptsTotal counts every outbound delivery attempt,
	// labelled by wire kind and outcome ("ok", "retry", "abandoned").
	OutboundAttemptsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "outbound_attempts_total",
		Help:      "Outbound delivery attempts, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// OutboundQueueDepth reports the number of messages currently queued
	// for outbound delivery (including those waiting on a retry backoff).
	OutboundQueueDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "outbound_queue_depth",
		Help:      "Messages queued for outbound delivery, including retry backoff.",
	})

	// OutboundLatencySeconds observes the duration of a successful
	// outbound HTTP round trip.
	OutboundLatencySeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "outbound_latency_seconds",
		Help:      "Latency of successful outbound HTTP deliveries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	// DiscoveryCacheLookups counts DNS discovery lookups, labelled by
	// record type ("version", "endpoint", "keys") and outcome ("ok",
	// "error"). A cache hit and a freshly-resolved value are both "ok" —
	// this counts resolution outcomes, not cache hit/miss.
	DiscoveryCacheLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "cache_lookups_total",
		Help:      "DNS discovery lookups, by record type and outcome.",
	}, []string{"record", "outcome"})

	// OAuthTokenRefreshesTotal counts client-credentials token refreshes,
	// labelled by outcome.
	OAuthTokenRefreshesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "oauth",
		Name:      "token_refreshes_total",
		Help:      "OAuth2 client-credentials token refreshes, by outcome.",
	}, []string{"outcome"})
)
