package metrics

import (
	"github.com/cloudfoundry/disk-alert/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRegistrar maintains the list of metrics to be served by the
// health endpoint server.
type PrometheusRegistrar struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	log        *logger.Logger

	sourceID string

	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// NewRegistrar returns an initialized health endpoint registrar configured
// with its own Prometheus registry and the given metrics.
func NewRegistrar(
	log *logger.Logger,
	sourceID string,
	opts ...RegistrarOption,
) *PrometheusRegistrar {
	defaultRegistry := prometheus.NewRegistry()
	defaultRegistry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	defaultRegistry.MustRegister(prometheus.NewGoCollector())

	r := &PrometheusRegistrar{
		log:        log,
		registerer: defaultRegistry,
		gatherer:   defaultRegistry,
		sourceID:   sourceID,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

func (r *PrometheusRegistrar) Registerer() prometheus.Registerer {
	return r.registerer
}

func (r *PrometheusRegistrar) Gatherer() prometheus.Gatherer {
	return r.gatherer
}

// Set will set the given value on the gauge metric with the given name. If
// the gauge metric is not found the process will exit with a status code of
// 1.
func (r *PrometheusRegistrar) Set(name string, value float64) {
	g, ok := r.gauges[name]
	if !ok {
		r.log.Panic("Set called for unknown health metric", logger.String("name", name))
	}

	g.Set(value)
}

// Inc will increment the counter metric with the given name by 1. If the
// counter metric is not found the process will exit with a status code of 1.
func (r *PrometheusRegistrar) Inc(name string) {
	c, ok := r.counters[name]
	if !ok {
		r.log.Panic("Inc called for unknown health metric", logger.String("name", name))
	}

	c.Inc()
}

// Histogram will return the histogram observer that matches the name.
func (r *PrometheusRegistrar) Histogram(name string) prometheus.Observer {
	h, ok := r.histograms[name]
	if !ok {
		r.log.Panic("Histogram called for unknown histogram", logger.String("name", name))
	}

	return h
}

// RegistrarOption is a function that can be used to set optional
// configuration when initializing a new PrometheusRegistrar.
type RegistrarOption func(*PrometheusRegistrar)

// WithCounter will create and register a new counter metric.
func WithCounter(name string, opts prometheus.CounterOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name

		if opts.ConstLabels == nil {
			opts.ConstLabels = make(prometheus.Labels)
		}
		opts.ConstLabels["source_id"] = r.sourceID

		r.counters[name] = prometheus.NewCounter(opts)

		r.registerer.MustRegister(r.counters[name])
	}
}

// WithGauge will create and register a new gauge metric.
func WithGauge(name string, opts prometheus.GaugeOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name

		if opts.ConstLabels == nil {
			opts.ConstLabels = make(prometheus.Labels)
		}
		opts.ConstLabels["source_id"] = r.sourceID

		r.gauges[name] = prometheus.NewGauge(opts)

		r.registerer.MustRegister(r.gauges[name])
	}
}

// WithHistogram will create and register a new histogram metric.
func WithHistogram(name string, opts prometheus.HistogramOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name

		if opts.ConstLabels == nil {
			opts.ConstLabels = make(prometheus.Labels)
		}
		opts.ConstLabels["source_id"] = r.sourceID

		r.histograms[name] = prometheus.NewHistogram(opts)

		r.registerer.MustRegister(r.histograms[name])
	}
}
