package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder backed by a Prometheus registry.
type PrometheusRecorder struct {
	buildsTotal    prom.Counter
	buildFailures  prom.Counter
	documentsBuilt prom.Counter
	brokenLinks    prom.Counter
	buildDuration  prom.Histogram
}

// NewPrometheusRecorder creates and registers the docpress build metrics.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		buildsTotal: prom.NewCounter(prom.CounterOpts{
			Name: "docpress_builds_total",
			Help: "Number of build runs started.",
		}),
		buildFailures: prom.NewCounter(prom.CounterOpts{
			Name: "docpress_build_failures_total",
			Help: "Number of build runs that failed outright.",
		}),
		documentsBuilt: prom.NewCounter(prom.CounterOpts{
			Name: "docpress_documents_built_total",
			Help: "Number of documents rendered across all builds.",
		}),
		brokenLinks: prom.NewCounter(prom.CounterOpts{
			Name: "docpress_broken_links_total",
			Help: "Number of broken internal links reported across all builds.",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Name:    "docpress_build_duration_seconds",
			Help:    "Wall clock duration of build runs.",
			Buckets: prom.DefBuckets,
		}),
	}
	reg.MustRegister(r.buildsTotal, r.buildFailures, r.documentsBuilt, r.brokenLinks, r.buildDuration)
	return r
}

func (r *PrometheusRecorder) BuildStarted() {
	r.buildsTotal.Inc()
}

func (r *PrometheusRecorder) BuildCompleted(duration time.Duration, documents, failures, brokenLinks int) {
	r.buildDuration.Observe(duration.Seconds())
	r.documentsBuilt.Add(float64(documents))
	r.brokenLinks.Add(float64(brokenLinks))
}

func (r *PrometheusRecorder) BuildFailed() {
	r.buildFailures.Inc()
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for the registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
