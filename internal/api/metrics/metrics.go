// Package metrics defines and registers all custom Prometheus metrics for the
// CMS API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package load and are
// served by the /metrics endpoint next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts access token refresh attempts.
// Label:
//   - result: "success", "expired", "unauthorized" or "error"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access token refresh attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts sessions moved to REVOKED by logout or logout-all.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of refresh sessions revoked.",
	},
)

// RateLimitRejectionsTotal counts requests refused by a rate limiter.
// Label:
//   - limiter: "api" or "auth"
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"limiter"},
)

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticleViewsTotal counts public article views handled by the view dispatcher.
// Label:
//   - result: "recorded", "dropped" (queue full) or "error"
var ArticleViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_views_total",
		Help:      "Total number of article views, by outcome.",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the number of views waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of views pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// UploadsTotal counts image uploads.
// Labels:
//   - folder: "articles", "thumbnails" or "settings"
//   - result: "success", "rejected" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of image uploads, by folder and result.",
	},
	[]string{"folder", "result"},
)

// UploadDuration measures how long an upload takes including the media host round trip.
// Label:
//   - folder: upload destination folder
var UploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "media_upload_duration_seconds",
		Help:      "Duration of image uploads to the media host.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"folder"},
)
