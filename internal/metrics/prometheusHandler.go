package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

var askDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ask_request_duration_seconds",
	Help:    "Total time spent answering one question.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"mode"})

var rebuildRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_rebuild_runs_total",
	Help: "Index rebuilds labelled by outcome.",
}, []string{"outcome"})

var indexEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_entries",
	Help: "Entries in the active index collection after the last rebuild.",
})

var skippedNodes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "traversal_skipped_nodes_total",
	Help: "Source nodes skipped because they could not be read.",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureAskMetrics(mode string, timeElapsed time.Duration) {
	askDuration.WithLabelValues(mode).Observe(timeElapsed.Seconds())
}

func CountRebuild(outcome string) {
	rebuildRuns.WithLabelValues(outcome).Inc()
}

func SetIndexEntries(count int) {
	indexEntries.Set(float64(count))
}

func AddSkippedNodes(count int) {
	skippedNodes.Add(float64(count))
}
