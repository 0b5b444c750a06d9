package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chatbot metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Full chat turn duration, labelled by how the turn finished
	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "turn_duration_seconds",
			Help:      "End-to-end chat turn duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"finish_reason"},
	)

	// Tool executions by name and outcome
	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "tool_executions_total",
			Help:      "Total task tool executions",
		},
		[]string{"tool", "status"},
	)

	// Completion engine failures by classification
	CompletionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "completion_failures_total",
			Help:      "Total completion provider failures",
		},
		[]string{"error_type"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	MessagesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "messages_stored_total",
			Help:      "Total messages persisted",
		},
		[]string{"role"},
	)

	// Requests rejected by the rate limiter, by window
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"window"},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "chatbot",
			Name:      "auth_requests_total",
			Help:      "Total authentication attempts",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint string, status int, durationSec float64) {
	statusStr := strconv.Itoa(status)
	RequestsTotal.WithLabelValues(method, endpoint, statusStr).Inc()
	RequestDuration.WithLabelValues(method, endpoint, statusStr).Observe(durationSec)
}

// RecordTurn records the end-to-end duration of a chat turn
func RecordTurn(finishReason string, durationSec float64) {
	TurnDuration.WithLabelValues(finishReason).Observe(durationSec)
}

// RecordToolExecution records one tool invocation
func RecordToolExecution(tool string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ToolExecutionsTotal.WithLabelValues(tool, status).Inc()
}

// RecordCompletionFailure records a classified provider failure
func RecordCompletionFailure(errorType string) {
	CompletionFailuresTotal.WithLabelValues(errorType).Inc()
}

// RecordTokens records token usage reported by the provider
func RecordTokens(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
	}
}

// RecordMessageStored records one persisted message
func RecordMessageStored(role string) {
	MessagesStoredTotal.WithLabelValues(role).Inc()
}

// RecordRateLimited records a request rejected by the rate limiter
func RecordRateLimited(window string) {
	RateLimitedTotal.WithLabelValues(window).Inc()
}

// RecordAuth records an authentication attempt
func RecordAuth(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	AuthRequestsTotal.WithLabelValues(status).Inc()
}
