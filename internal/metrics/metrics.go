package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics
var (
	PipelineEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_moderation_evaluations_total",
		Help: "Total number of moderation pipeline evaluations",
	}, []string{"outcome"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verdant_moderation_evaluation_duration_seconds",
		Help:    "Moderation pipeline evaluation duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"outcome"})
)

// Account gate metrics
var (
	AccountChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_account_checks_total",
		Help: "Total number of account status checks by result",
	}, []string{"result"})

	AccountTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_account_transitions_total",
		Help: "Total number of lazy account state transitions",
	}, []string{"transition"})

	IdentityReenableFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdant_identity_reenable_failures_total",
		Help: "Total number of failed external identity re-enable attempts",
	})
)

// Content filter metrics
var (
	FilterViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_filter_violations_total",
		Help: "Total number of content filter violations by category",
	}, []string{"category"})

	PolicyRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_policy_refresh_total",
		Help: "Total number of policy list cache lookups by result",
	}, []string{"result"})
)

// Toxicity classifier metrics
var (
	ToxicityActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_toxicity_actions_total",
		Help: "Total number of toxicity gate decisions by action",
	}, []string{"action"})

	ClassifierDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "verdant_classifier_duration_seconds",
		Help:    "External toxicity classifier call duration in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})
)

// Review queue metrics
var (
	ReviewNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verdant_review_notifications_total",
		Help: "Total number of human-review notifications by result",
	}, []string{"result"})

	ReviewRecordsPersistedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdant_review_records_persisted_total",
		Help: "Total number of review records persisted by the review worker",
	})
)
