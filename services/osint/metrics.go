// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package osint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus Metrics for Search Orchestration
// =============================================================================

var (
	// searchesTotal counts search runs by outcome.
	// Labels: status (clean, partial, rejected) — partial means at least
	// one tool errored but the search still settled.
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skiptrace",
		Subsystem: "osint",
		Name:      "searches_total",
		Help:      "Total search runs by outcome",
	}, []string{"status"})

	// toolCallsTotal counts individual tool task settlements.
	// Labels: tool, status (done, error)
	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skiptrace",
		Subsystem: "osint",
		Name:      "tool_calls_total",
		Help:      "Total tool task settlements by tool and status",
	}, []string{"tool", "status"})

	// toolCallSeconds measures per-tool call latency.
	// Labels: tool
	toolCallSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skiptrace",
		Subsystem: "osint",
		Name:      "tool_call_seconds",
		Help:      "Tool call latency from launch to settlement",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"tool"})

	// searchSeconds measures whole-search latency (dispatch to all-settled).
	searchSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "skiptrace",
		Subsystem: "osint",
		Name:      "search_seconds",
		Help:      "Search latency from dispatch until every task settled",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})
)

func recordToolCall(key ToolKey, duration time.Duration, success bool) {
	status := "done"
	if !success {
		status = "error"
	}
	toolCallsTotal.WithLabelValues(string(key), status).Inc()
	toolCallSeconds.WithLabelValues(string(key)).Observe(duration.Seconds())
}

func recordSearch(duration time.Duration, errored int) {
	status := "clean"
	if errored > 0 {
		status = "partial"
	}
	searchesTotal.WithLabelValues(status).Inc()
	searchSeconds.Observe(duration.Seconds())
}

func recordSearchRejected() {
	searchesTotal.WithLabelValues("rejected").Inc()
}
