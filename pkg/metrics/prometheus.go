package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wardrobe_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_recommendations_total",
			Help: "Recommendation outcomes by result code",
		},
		[]string{"result"},
	)

	WeatherRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_weather_requests_total",
			Help: "Weather provider calls by outcome",
		},
		[]string{"outcome"},
	)

	ChatAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_chat_attempts_total",
			Help: "Chat completion attempts by outcome",
		},
		[]string{"outcome"},
	)

	ChatBackoffSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_chat_backoff_seconds_total",
			Help: "Time spent waiting between rate limited chat attempts",
		},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_llm_tokens_total",
			Help: "Tokens reported by the chat completion provider",
		},
		[]string{"kind"},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_inbound_rate_limited_total",
			Help: "Requests rejected by the inbound rate limiter",
		},
	)
)
