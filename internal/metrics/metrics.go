// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Verification gate metrics ─────────────────────────────────────────────────

// GateDecisionsTotal counts verification gate evaluations by outcome.
// Label:
//   - outcome: "verified", "grace_pending", "grace_new_account", "expired", "unknown"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of verification gate evaluations, by outcome.",
	},
	[]string{"outcome"},
)

// DocumentsSubmittedTotal counts verification documents submitted.
// Label:
//   - document_type: "business_license", "property_deed", "national_id", "other"
var DocumentsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_submitted_total",
		Help:      "Total number of verification documents submitted, by type.",
	},
	[]string{"document_type"},
)

// DocumentsReviewedTotal counts administrative review outcomes.
// Label:
//   - status: "verified" or "rejected"
var DocumentsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_reviewed_total",
		Help:      "Total number of verification documents reviewed, by resulting status.",
	},
	[]string{"status"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly created property listings.
// Label:
//   - listing_type: "rent", "sale", or "lease"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of property listings created, by listing type.",
	},
	[]string{"listing_type"},
)

// ListingsBlockedTotal counts listing attempts denied by the verification gate.
var ListingsBlockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_blocked_total",
		Help:      "Total number of listing attempts blocked by the verification gate.",
	},
)

// ── View analytics metrics ────────────────────────────────────────────────────

// ViewsProcessedTotal counts view events that completed processing.
var ViewsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_processed_total",
		Help:      "Total number of property view events successfully processed.",
	},
)

// ViewsDedupTotal counts view deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new view, processed)
var ViewsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dedup_total",
		Help:      "Total number of view deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the current number of view events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
