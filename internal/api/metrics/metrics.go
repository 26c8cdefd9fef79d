// Package metrics defines and registers all custom Prometheus metrics for the
// telemetry relay. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telemetry"

// ── Ingestion metrics ─────────────────────────────────────────────────────────

// ReportsIngestedTotal counts device reports accepted into the log store.
var ReportsIngestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_ingested_total",
		Help:      "Total number of device reports accepted.",
	},
)

// ReportsRejectedTotal counts reports rejected at validation.
// Label:
//   - reason: "missing_device_id" or "bad_timestamp"
var ReportsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_rejected_total",
		Help:      "Total number of device reports rejected by validation.",
	},
	[]string{"reason"},
)

// LogEvictionsTotal counts entries evicted to honour the retention ceiling.
var LogEvictionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_evictions_total",
		Help:      "Total number of log entries evicted oldest-first.",
	},
)

// ── Command metrics ───────────────────────────────────────────────────────────

// CommandsEnqueuedTotal counts commands queued by operators.
var CommandsEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_enqueued_total",
		Help:      "Total number of control commands enqueued.",
	},
)

// CommandsDroppedTotal counts commands dropped when a device queue hits its cap.
var CommandsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_dropped_total",
		Help:      "Total number of commands dropped by the per-device queue cap.",
	},
)

// CommandsDeliveredTotal counts commands handed to a polling device.
var CommandsDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_delivered_total",
		Help:      "Total number of commands delivered on device drain.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)

// SessionsExpiredTotal counts sessions removed by the periodic sweep.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of expired sessions removed by the sweep.",
	},
)
