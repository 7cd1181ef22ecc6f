package repository

import "context"

// ForecastModel runs a single forward inference pass over prepared feature
// windows and returns per-timestep demand and supply predictions.
type ForecastModel interface {
	Predict(ctx context.Context, long, short [][]float64) (demand, supply []float64, err error)
}

// ModelStore is the read-only per-horizon model registry populated at startup.
// Lookup is an exact match on the configured horizon set; there is no
// interpolation across horizons.
type ModelStore interface {
	Lookup(horizonHours int) (ForecastModel, bool)
	Status() map[string]bool
	Horizons() []int
}

// FeatureSource produces model-ready input windows for a horizon. The shipped
// implementation emits random placeholders; a real feature-extraction
// pipeline satisfies the same interface.
type FeatureSource interface {
	Windows(ctx context.Context, horizonHours int) (long, short [][]float64, err error)
}

// Metrics records forecast-serving observability signals.
type Metrics interface {
	RecordForecast(source string, horizonHours int)
	RecordForecastError(kind string)
	ObserveForecastDuration(source string, seconds float64)
	SetModelLoaded(horizonHours int, loaded bool)
}
