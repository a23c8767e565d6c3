// Package metrics defines and registers all custom Prometheus metrics for the
// operations tracker. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "opstracker"

// RecordsCreatedTotal counts production records accepted for persistence.
// Label:
//   - team: the team the record was logged under
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of production records created, by team.",
	},
	[]string{"team"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ReportsRenderedTotal counts overview report renders.
// Label:
//   - format: "json" or "pdf"
var ReportsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_rendered_total",
		Help:      "Total number of overview reports rendered, by format.",
	},
	[]string{"format"},
)

// SnapshotCacheTotal counts bootstrap snapshot cache decisions.
// Label:
//   - result: "hit", "miss", or "bypass" (cache unavailable)
var SnapshotCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_total",
		Help:      "Total number of bootstrap snapshot cache lookups, by result.",
	},
	[]string{"result"},
)
