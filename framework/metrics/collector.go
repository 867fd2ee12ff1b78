package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-validation/framework/validation"
)

// Outcome label values.
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeError  = "error"
)

// Collector turns validation events into Prometheus metrics:
//
//	<ns>_validations_total{context,strategy,outcome}
//	<ns>_validation_duration_seconds{context,strategy}
//	<ns>_validation_field_errors_total{context}
//
// Field names are not labels: they come from request data.
type Collector struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	fieldErrors *prometheus.CounterVec
}

// NewCollector registers the validation metrics on registry. A nil registry
// gets a fresh one; an empty namespace defaults to "validation".
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "validation"
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validate calls by context, strategy and outcome.",
		}, []string{"context", "strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent inside the validation strategy.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}, []string{"context", "strategy"}),
		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_field_errors_total",
			Help:      "Failing fields by context.",
		}, []string{"context"}),
	}

	registry.MustRegister(c.validations, c.duration, c.fieldErrors)
	return c
}

// Subscribe records every finished Validate call dispatched on events.
func (c *Collector) Subscribe(events *validation.Dispatcher) {
	events.AddListener(validation.EventPassed, c.observe, 100)
	events.AddListener(validation.EventFailed, c.observe, 100)
}

func (c *Collector) observe(ev *validation.Event) {
	outcome := OutcomePassed
	switch {
	case ev.Err != nil:
		outcome = OutcomeError
	case ev.Result != nil && ev.Result.Fails():
		outcome = OutcomeFailed
		c.fieldErrors.WithLabelValues(ev.Context).Add(float64(len(ev.Result.FirstErrors())))
	}

	c.validations.WithLabelValues(ev.Context, ev.Strategy, outcome).Inc()
	c.duration.WithLabelValues(ev.Context, ev.Strategy).Observe(ev.Duration.Seconds())
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler exposes the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
