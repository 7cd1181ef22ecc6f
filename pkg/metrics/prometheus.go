package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	modelsLoaded   *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridsense_forecasts_total",
				Help: "Total number of forecasts served",
			},
			[]string{"source", "horizon"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridsense_forecast_errors_total",
				Help: "Total number of forecast errors encountered",
			},
			[]string{"type"},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridsense_forecast_duration_seconds",
				Help:    "Duration of forecast generation in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		modelsLoaded: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gridsense_models_loaded",
				Help: "Whether a trained model is loaded for a horizon (1) or not (0)",
			},
			[]string{"horizon"},
		),
	}
}

// RecordForecast records a served forecast by generation source.
func (r *Recorder) RecordForecast(source string, horizonHours int) {
	r.forecastsTotal.WithLabelValues(source, strconv.Itoa(horizonHours)).Inc()
}

// RecordForecastError records an error occurrence.
func (r *Recorder) RecordForecastError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// ObserveForecastDuration records forecast generation latency in seconds.
func (r *Recorder) ObserveForecastDuration(source string, seconds float64) {
	r.duration.WithLabelValues(source).Observe(seconds)
}

// SetModelLoaded records whether a model artifact is loaded for a horizon.
func (r *Recorder) SetModelLoaded(horizonHours int, loaded bool) {
	v := 0.0
	if loaded {
		v = 1.0
	}
	r.modelsLoaded.WithLabelValues(strconv.Itoa(horizonHours)).Set(v)
}
