// Package metrics counts Prism Central API traffic and stage outcomes for a
// single nfsensor run.
//
// Each run owns its own registry. The counters can be exported in the
// Prometheus textfile-collector format so that scheduled runs show up in
// node_exporter.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters of one run. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	apiRequests  *prometheus.CounterVec
	apiMutations *prometheus.CounterVec
	apiLatency   *prometheus.HistogramVec
	stageItems   *prometheus.CounterVec
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nfsensor",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of Prism Central API requests by method, resource and status code",
			},
			[]string{"method", "resource", "code"},
		),

		apiMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nfsensor",
				Subsystem: "api",
				Name:      "mutations_total",
				Help:      "Total number of mutating Prism Central API requests by resource",
			},
			[]string{"resource"},
		),

		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nfsensor",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Latency of Prism Central API requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6s
			},
			[]string{"method", "resource"},
		),

		stageItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nfsensor",
				Subsystem: "stage",
				Name:      "items_total",
				Help:      "Total number of processed items by stage and action",
			},
			[]string{"stage", "action"},
		),
	}

	r.registry.MustRegister(r.apiRequests, r.apiMutations, r.apiLatency, r.stageItems)
	return r
}

// Registry returns the registry holding this run's counters.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRequest records one API request. code is the HTTP status, or 0
// when no response was received.
func (r *Recorder) ObserveRequest(method, resource string, mutating bool, code int, seconds float64) {
	if r == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	r.apiRequests.WithLabelValues(method, resource, label).Inc()
	r.apiLatency.WithLabelValues(method, resource).Observe(seconds)
	if mutating {
		r.apiMutations.WithLabelValues(resource).Inc()
	}
}

// ObserveItem records the outcome of one stage item.
func (r *Recorder) ObserveItem(stage, action string) {
	if r == nil {
		return
	}
	r.stageItems.WithLabelValues(stage, action).Inc()
}

// TotalMutations sums mutating requests across all resources.
func (r *Recorder) TotalMutations() int {
	if r == nil {
		return 0
	}
	families, err := r.registry.Gather()
	if err != nil {
		return 0
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != "nfsensor_api_mutations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return int(total)
}

// WriteTextfile writes all counters to path in the textfile-collector format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
