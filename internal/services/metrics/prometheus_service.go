package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "weather_cli"

// PromCollector keeps fetch metrics in its own registry. A CLI has no
// scrape endpoint, so the registry is dumped with WriteTextfile on exit.
type PromCollector struct {
	reg  *prometheus.Registry
	hist *prometheus.HistogramVec
	cnt  *prometheus.CounterVec
}

func NewPromCollector() *PromCollector {
	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Weather fetch latencies",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	cnt := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Weather fetch counts by result",
		},
		[]string{"operation", "result"},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		hist,
		cnt,
		collectors.NewGoCollector(),
	)

	return &PromCollector{reg: reg, hist: hist, cnt: cnt}
}

func (p *PromCollector) ObserveLatency(op string, d time.Duration) {
	p.hist.WithLabelValues(op).Observe(d.Seconds())
}

// IncrementCounter bumps the counter for op; labels[0], if given, is the result.
func (p *PromCollector) IncrementCounter(op string, labels ...string) {
	result := "unknown"
	if len(labels) > 0 {
		result = labels[0]
	}
	p.cnt.WithLabelValues(op, result).Inc()
}

// Registry is the private registry holding the collector's metrics.
func (p *PromCollector) Registry() *prometheus.Registry {
	return p.reg
}

// Counter exposes the counter vector for tests and reporting.
func (p *PromCollector) Counter() *prometheus.CounterVec {
	return p.cnt
}

// WriteTextfile writes all metrics in the Prometheus text format, atomically,
// for the node_exporter textfile collector.
func (p *PromCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.reg)
}
