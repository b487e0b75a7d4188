// Package metrics defines and registers all custom Prometheus metrics for the
// leave system. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leave_system"

// ── Verification metrics ─────────────────────────────────────────────────────

// OTPIssuedTotal counts one-time passcodes issued (and stored), regardless of
// whether delivery succeeded.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time passcodes issued.",
	},
)

// OTPVerificationsTotal counts verification attempts.
// Label:
//   - result: "ok", "invalid" (wrong code) or "expired" (no live token)
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// ResetTokensIssuedTotal counts password-reset tokens issued.
var ResetTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_issued_total",
		Help:      "Total number of password-reset tokens issued.",
	},
)

// ── Leave metrics ────────────────────────────────────────────────────────────

// LeavesAppliedTotal counts successfully admitted leave requests.
// Label:
//   - type: "Planned" or "Emergency"
var LeavesAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaves_applied_total",
		Help:      "Total number of leave requests admitted, by type.",
	},
	[]string{"type"},
)

// LeaveRejectionsTotal counts leave requests rejected at admission.
// Label:
//   - reason: "invalid_type", "conflict" or "backdated"
var LeaveRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_rejections_total",
		Help:      "Total number of leave requests rejected at admission, by reason.",
	},
	[]string{"reason"},
)

// ── Mail metrics ─────────────────────────────────────────────────────────────

// MailSendsTotal counts delivery attempts made by the mail workers.
// Label:
//   - result: "ok" or "error"
var MailSendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sends_total",
		Help:      "Total number of mail delivery attempts, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the current number of messages waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail worker channel.",
	},
	[]string{"worker_id"},
)
