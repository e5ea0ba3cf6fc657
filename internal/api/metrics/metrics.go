// Package metrics defines and registers all custom Prometheus metrics for
// the drive API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the registry is exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "drive"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokenExchangesTotal counts token-exchange attempts.
// Label:
//   - result: "success", "validation_error", "auth_error", "config_error", "error"
var TokenExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_exchanges_total",
		Help:      "Total number of token exchange attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "no_token", "invalid_token", "missing_user_info", "no_secret"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// ── File metrics ──────────────────────────────────────────────────────────────

// FilesCreatedTotal counts file-metadata records created.
var FilesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_created_total",
		Help:      "Total number of file metadata records created.",
	},
)

// PresignedURLsTotal counts presigned URLs issued.
// Label:
//   - operation: "put" or "get"
var PresignedURLsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "presigned_urls_total",
		Help:      "Total number of presigned URLs issued, by operation.",
	},
	[]string{"operation"},
)
