// Package metrics defines and registers the custom Prometheus metrics of the
// cat listing API. HTTP request metrics come from the echoprometheus
// middleware; the counters here track domain outcomes.
//
// All metrics register with the default Prometheus registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catlisting"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the token gate.
// Label:
//   - reason: "missing" or "invalid"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the token gate.",
	},
	[]string{"reason"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// CatsCreatedTotal counts listing creations.
// Label:
//   - result: "ok", "upload_failed" or "error"
var CatsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cats_created_total",
		Help:      "Total number of listing creations, by result.",
	},
	[]string{"result"},
)

// ImageUploadBytes observes the size of uploaded listing images.
var ImageUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_bytes",
		Help:      "Size of uploaded listing images in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6), // 16KiB .. 16MiB
	},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// MessagesPostedTotal counts chat messages stored.
var MessagesPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of chat messages posted.",
	},
)

// ChatSubscribers tracks the number of open live chat connections.
var ChatSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_subscribers",
		Help:      "Current number of open live chat websocket connections.",
	},
)

// ── Social metrics ────────────────────────────────────────────────────────────

// TweetsTotal counts tweet attempts.
// Label:
//   - result: "ok" or "error"
var TweetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tweets_total",
		Help:      "Total number of tweet attempts, by result.",
	},
	[]string{"result"},
)
