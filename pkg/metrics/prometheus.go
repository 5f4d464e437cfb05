package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictionsTotal *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastProbability  *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fraudscope_predictions_total",
				Help: "Total number of predictions served per model",
			},
			[]string{"model"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fraudscope_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastProbability: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fraudscope_last_fraud_probability",
				Help: "Last predicted fraud probability per model",
			},
			[]string{"model"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fraudscope_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPrediction records a served prediction and its probability.
func (r *Recorder) RecordPrediction(model string, probability float64) {
	r.predictionsTotal.WithLabelValues(model).Inc()
	r.lastProbability.WithLabelValues(model).Set(probability)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
