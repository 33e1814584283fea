// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traveltrek_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MembershipTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_membership_transitions_total",
			Help: "Total number of membership lifecycle transitions",
		},
		[]string{"transition"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_notifications_total",
			Help: "Total number of notification delivery attempts",
		},
		[]string{"channel", "outcome"},
	)

	ChatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_chat_replies_total",
			Help: "Total number of chat concierge replies",
		},
		[]string{"source"},
	)

	OTPTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_otp_total",
			Help: "Total number of one-time codes by purpose and outcome",
		},
		[]string{"purpose", "outcome"},
	)

	RateLimitDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traveltrek_rate_limit_denials_total",
			Help: "Total number of requests denied by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// Membership transitions.
const (
	TransitionEnrolled  = "enrolled"
	TransitionSelected  = "plan_selected"
	TransitionActivated = "activated"
	TransitionRejected  = "rejected"
	TransitionCancelled = "cancelled"
	TransitionExpired   = "expired"
	TransitionExtended  = "extended"
)

// Notification outcomes.
const (
	OutcomeSent       = "sent"
	OutcomeRetried    = "retried"
	OutcomeDeadLetter = "dead_letter"
)

// OTP outcomes.
const (
	OTPIssued   = "issued"
	OTPVerified = "verified"
	OTPRejected = "rejected"
)

func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func RecordTransition(transition string) {
	MembershipTransitionsTotal.WithLabelValues(transition).Inc()
}

func RecordNotification(channel, outcome string) {
	NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}

func RecordChatReply(source string) {
	ChatRepliesTotal.WithLabelValues(source).Inc()
}

func RecordOTP(purpose, outcome string) {
	OTPTotal.WithLabelValues(purpose, outcome).Inc()
}

func RecordRateLimitDenial(limiter string) {
	RateLimitDenialsTotal.WithLabelValues(limiter).Inc()
}
