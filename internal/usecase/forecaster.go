package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GridSense/internal/domain/models"
	"GridSense/internal/domain/repository"
	"GridSense/internal/predictor"
	"GridSense/pkg/cache"
	xhttp "GridSense/pkg/http"
	"GridSense/pkg/logger"
)

// Forecaster serves demand/supply forecasts. It prefers a trained model for
// the exact requested horizon and falls back to the synthetic generator for
// everything else, including model failures mid-request.
type Forecaster struct {
	log      *logger.Logger
	store    repository.ModelStore
	features repository.FeatureSource
	synth    SyntheticSource
	metrics  repository.Metrics

	cache    cache.Service
	cacheTTL time.Duration
	now      func() time.Time
}

// SyntheticSource generates fallback series. Satisfied by synthetic.Generator.
type SyntheticSource interface {
	Generate(horizonHours int) ([]models.ForecastPoint, error)
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithCache enables response caching with the given TTL.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(f *Forecaster) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithClock overrides the wall clock used for model-path timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Forecaster) {
		f.now = now
	}
}

// NewForecaster wires the forecast orchestrator.
func NewForecaster(
	log *logger.Logger,
	store repository.ModelStore,
	features repository.FeatureSource,
	synth SyntheticSource,
	metrics repository.Metrics,
	opts ...Option,
) *Forecaster {
	f := &Forecaster{
		log:      log,
		store:    store,
		features: features,
		synth:    synth,
		metrics:  metrics,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forecast returns the prediction envelope for a horizon in hours.
func (f *Forecaster) Forecast(ctx context.Context, horizonHours int) (*models.PredictionResponse, error) {
	if horizonHours <= 0 {
		return nil, xhttp.BadRequestErrorf("horizon must be positive, got %d", horizonHours)
	}

	cacheKey := fmt.Sprintf("forecast:%dh", horizonHours)
	if f.cache != nil {
		var cached models.PredictionResponse
		if err := f.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			f.log.Warn("forecast cache read failed", logger.Error(err))
		}
	}

	start := time.Now()
	resp, err := f.forecast(ctx, horizonHours)
	if err != nil {
		if f.metrics != nil {
			f.metrics.RecordForecastError("forecast")
		}
		return nil, err
	}
	if f.metrics != nil {
		f.metrics.RecordForecast(resp.Source, horizonHours)
		f.metrics.ObserveForecastDuration(resp.Source, time.Since(start).Seconds())
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, cacheKey, resp, f.cacheTTL); err != nil {
			f.log.Warn("forecast cache write failed", logger.Error(err))
		}
	}
	return resp, nil
}

func (f *Forecaster) forecast(ctx context.Context, horizonHours int) (*models.PredictionResponse, error) {
	if model, ok := f.store.Lookup(horizonHours); ok {
		resp, err := f.fromModel(ctx, model, horizonHours)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
	return f.fromSynthetic(horizonHours)
}

func (f *Forecaster) fromModel(ctx context.Context, model repository.ForecastModel, horizonHours int) (*models.PredictionResponse, error) {
	long, short, err := f.features.Windows(ctx, horizonHours)
	if err != nil {
		return nil, fmt.Errorf("prepare features: %w", err)
	}

	demand, supply, err := model.Predict(ctx, long, short)
	if err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}

	start := f.now()
	points := make([]models.ForecastPoint, 0, len(demand))
	for i := range demand {
		ts := start.Add(time.Duration(i) * predictor.StepMinutes * time.Minute)
		var s float64
		if i < len(supply) {
			s = supply[i]
		}
		points = append(points, models.NewForecastPoint(ts, demand[i], s))
	}

	return &models.PredictionResponse{
		Status: models.StatusSuccess,
		Source: models.RealModelSource(horizonHours),
		Data:   points,
	}, nil
}

func (f *Forecaster) fromSynthetic(horizonHours int) (*models.PredictionResponse, error) {
	points, err := f.synth.Generate(horizonHours)
	if err != nil {
		return nil, fmt.Errorf("synthetic series: %w", err)
	}
	return &models.PredictionResponse{
		Status: models.StatusSuccess,
		Source: models.FallbackSource,
		Data:   points,
	}, nil
}
