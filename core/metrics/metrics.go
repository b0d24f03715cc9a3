package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects reconcile cycle metrics, labelled by feature.
type Recorder struct {
	registry *prometheus.Registry
	objects  *prometheus.CounterVec
	cycles   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	live     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		objects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "descriptor_sync_objects_total",
			Help: "Objects added, removed or updated by reconcile cycles.",
		}, []string{"feature", "op"}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "descriptor_sync_cycles_total",
			Help: "Reconcile cycles by outcome.",
		}, []string{"feature", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "descriptor_sync_cycle_duration_seconds",
			Help:    "Duration of reconcile cycles.",
			Buckets: prometheus.DefBuckets,
		}, []string{"feature"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "descriptor_sync_live_objects",
			Help: "Live objects after the last reconcile cycle.",
		}, []string{"feature"}),
	}
	r.registry.MustRegister(r.objects, r.cycles, r.duration, r.live)
	return r
}

// Cycle is the outcome of one reconcile cycle.
type Cycle struct {
	Added    int
	Removed  int
	Updated  int
	Live     int
	Duration time.Duration
	Err      error
}

// ObserveCycle records one reconcile cycle of feature.
func (r *Recorder) ObserveCycle(feature string, c Cycle) {
	r.objects.WithLabelValues(feature, "add").Add(float64(c.Added))
	r.objects.WithLabelValues(feature, "remove").Add(float64(c.Removed))
	r.objects.WithLabelValues(feature, "update").Add(float64(c.Updated))
	r.duration.WithLabelValues(feature).Observe(c.Duration.Seconds())
	r.live.WithLabelValues(feature).Set(float64(c.Live))

	outcome := "success"
	if c.Err != nil {
		outcome = "failure"
	}
	r.cycles.WithLabelValues(feature, outcome).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus text format.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
