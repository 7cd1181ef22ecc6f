package models

import (
	"fmt"
	"math"
	"time"
)

// Response status values on the wire.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusOnline  = "online"
)

// FallbackSource is the source label for synthetically generated series. It
// is fixed and horizon-independent; clients key off the exact string.
const FallbackSource = "LS-DL Model"

// TimeLabelLayout renders a 12-hour clock with leading zeros, e.g. "02:30 PM".
const TimeLabelLayout = "03:04 PM"

// RealModelSource returns the source label for model-backed predictions.
func RealModelSource(horizonHours int) string {
	return fmt.Sprintf("Real Model (%dh)", horizonHours)
}

// ForecastPoint is a single timestamped demand/supply/gap record.
type ForecastPoint struct {
	Timestamp    time.Time `json:"timestamp"`
	TimeLabel    string    `json:"timeLabel"`
	Demand       int       `json:"demand"`
	Supply       int       `json:"supply"`
	Gap          int       `json:"gap"`
	IsPrediction bool      `json:"isPrediction"`
}

// NewForecastPoint builds a point from the unrounded float intermediates.
// Demand, supply and gap are each rounded independently, so the recorded gap
// can differ by one from the difference of the rounded fields. Clients of the
// original service depend on exactly this behavior.
func NewForecastPoint(ts time.Time, demand, supply float64) ForecastPoint {
	return ForecastPoint{
		Timestamp:    ts,
		TimeLabel:    ts.Format(TimeLabelLayout),
		Demand:       int(math.Round(demand)),
		Supply:       int(math.Round(supply)),
		Gap:          int(math.Round(demand - supply)),
		IsPrediction: true,
	}
}

// PredictionResponse is the success envelope for prediction endpoints.
type PredictionResponse struct {
	Status string          `json:"status"`
	Source string          `json:"source"`
	Data   []ForecastPoint `json:"data"`
}

// ErrorResponse is the single failure shape exposed to clients.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HomeResponse reports service and model-registry status.
type HomeResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	ModelsStatus map[string]bool   `json:"models_status"`
	Endpoints    map[string]string `json:"endpoints"`
}
