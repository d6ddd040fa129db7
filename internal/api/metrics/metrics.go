// Package metrics defines and registers the custom Prometheus metrics of the
// tracker API. It is the single source of truth for metric names, labels and
// help strings.
//
// All metrics are registered with the default Prometheus registry on package
// init through promauto; the /metrics endpoint exposes them next to the HTTP
// metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "conflict", "invalid", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// AuthGateRejectionsTotal counts requests turned away by the auth middleware.
// Label:
//   - reason: "missing", "invalid", "expired"
var AuthGateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_rejections_total",
		Help:      "Total number of requests rejected before reaching a resource handler.",
	},
	[]string{"reason"},
)

// OwnershipDenialsTotal counts resource accesses refused by the ownership check.
// Label:
//   - resource: "project" or "task"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of accesses to resources owned by another user.",
	},
	[]string{"resource"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesCreatedTotal counts created projects and tasks.
// Labels:
//   - resource: "project" or "task"
//   - replay: "true" when an Idempotency-Key matched an earlier create
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of create requests served, by resource and idempotent replay.",
	},
	[]string{"resource", "replay"},
)

// TaskStatusUpdatesTotal counts status overwrites by target status.
var TaskStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_updates_total",
		Help:      "Total number of task status updates, by new status.",
	},
	[]string{"status"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of task events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of task events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts task events discarded because the dispatcher was
// closed or its worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of task events that could not be queued.",
	},
)

// ActivityRecordDuration measures how long persisting a single task event takes.
// Label:
//   - result: "ok" or "error"
var ActivityRecordDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_record_duration_seconds",
		Help:      "Duration of task event persistence from dequeue to write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
