package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multihop_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "multihop_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multihop_runs_total",
		Help: "Total pipeline runs",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "multihop_run_duration_seconds",
		Help:    "End-to-end pipeline run duration",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	HopsPerRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "multihop_hops_per_run",
		Help:    "Number of retrieval hops executed per run",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})

	RetrievalRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multihop_retrieval_requests_total",
		Help: "Total passage retrieval requests",
	}, []string{"backend", "status"})

	RetrievalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "multihop_retrieval_duration_seconds",
		Help:    "Passage retrieval duration",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"backend"})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multihop_llm_requests_total",
		Help: "Total LLM requests",
	}, []string{"model", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "multihop_llm_request_duration_seconds",
		Help:    "LLM request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"model"})

	EmbeddingRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "multihop_embedding_request_duration_seconds",
		Help:    "Embedding request duration",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
	})

	EvaluationExamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multihop_evaluation_examples_total",
		Help: "Evaluated examples by outcome",
	}, []string{"metric", "outcome"})
)
