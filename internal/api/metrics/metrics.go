// Package metrics defines and registers all custom Prometheus metrics for the
// rental marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// SearchesTotal counts public catalogue searches.
// Label:
//   - sort: the applied sort order ("newest", "price_asc", "price_desc")
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of public property searches, by sort order.",
	},
	[]string{"sort"},
)

// SearchDuration measures end-to-end search latency including the count query.
var SearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of public property searches.",
		Buckets:   prometheus.DefBuckets,
	},
)

// PropertiesCreatedTotal counts newly created listings.
var PropertiesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created.",
	},
)

// ModerationActionsTotal counts admin moderation actions.
// Label:
//   - action: "block", "unblock", "delete_user", "delete_property"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of admin moderation actions, by action.",
	},
	[]string{"action"},
)

// SignupsTotal counts account registrations.
// Label:
//   - role: "tenant" or "owner"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of account signups, by role.",
	},
	[]string{"role"},
)
