// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PipelineOutcomes counts assistant replies by outcome (answered, degraded).
	PipelineOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_replies_total",
			Help: "Assistant replies by outcome",
		},
		[]string{"outcome"},
	)

	// PipelineStageDuration tracks time spent in each answer stage.
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_stage_duration_seconds",
			Help:    "Assistant pipeline stage duration",
			Buckets: []float64{.001, .01, .05, .1, .25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"stage"},
	)

	// RetrievalFailures counts searches that fell back to empty context.
	RetrievalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_retrieval_failures_total",
			Help: "Vector searches that failed or timed out",
		},
	)

	// RetrievalCache counts cache lookups by result (hit, miss, error).
	RetrievalCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_cache_lookups_total",
			Help: "Retrieval cache lookups by result",
		},
		[]string{"result"},
	)

	// DurableDegraded is 1 once the durable tier has failed over to the shadow store.
	DurableDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "durable_store_degraded",
			Help: "1 when the durable store is served from the in-process shadow",
		},
	)

	// MessagesTotal counts stored chat messages by role.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat messages stored",
		},
		[]string{"role"},
	)

	// ComplaintTransitions counts complaint status changes.
	ComplaintTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaint_status_transitions_total",
			Help: "Complaint status transitions",
		},
		[]string{"from", "to"},
	)
)
