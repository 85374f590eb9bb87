package progress

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink publishes progress as a Prometheus gauge, one time series per
// chain/replica name. Registered against prometheus.DefaultRegisterer via
// promauto.
type MetricsSink struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsSink registers the underlying gauge vector. Call once per
// process; a second call would panic on duplicate registration, same as
// any other promauto metric.
func NewMetricsSink() *MetricsSink {
	return &MetricsSink{
		gauge: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "nrpt",
			Name:      "run_progress_fraction",
			Help:      "Fractional completion of a sampling run, by chain or replica name.",
		}, []string{"name"}),
	}
}

func (s *MetricsSink) Report(name string, frac float64) {
	s.gauge.WithLabelValues(name).Set(frac)
}
