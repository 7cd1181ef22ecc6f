package di

import (
	"GridSense/internal/domain/repository"
	"GridSense/internal/features"
	"GridSense/internal/handler/api"
	"GridSense/internal/registry"
	"GridSense/internal/synthetic"
	"GridSense/internal/usecase"
	"GridSense/pkg/cache"
	"GridSense/pkg/config"
	xhttp "GridSense/pkg/http"
	"GridSense/pkg/logger"
	"GridSense/pkg/metrics"
	"GridSense/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics builds the Prometheus recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideModelStore loads model artifacts from the configured directory.
func ProvideModelStore(cfg *config.Config, log *logger.Logger, m repository.Metrics) repository.ModelStore {
	return registry.Load(cfg.Models.Dir, cfg.Models.Horizons, log, m)
}

// ProvideFeatureSource builds the model input pipeline.
func ProvideFeatureSource(cfg *config.Config) repository.FeatureSource {
	return features.NewRandomSource(cfg.Forecast.Seed)
}

// ProvideSyntheticSource builds the fallback series generator.
func ProvideSyntheticSource(cfg *config.Config) usecase.SyntheticSource {
	return synthetic.NewGenerator(synthetic.WithSeed(cfg.Forecast.Seed))
}

// ProvideCache builds the cache backend: Redis when enabled, in-process
// memory otherwise.
func ProvideCache(cfg *config.Config, log *logger.Logger) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, err
		}
		log.Info("cache: redis connected",
			logger.String("host", cfg.Cache.Redis.Host),
			logger.Int("port", cfg.Cache.Redis.Port))
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideForecaster wires the forecast orchestrator.
func ProvideForecaster(
	cfg *config.Config,
	log *logger.Logger,
	store repository.ModelStore,
	featureSource repository.FeatureSource,
	synth usecase.SyntheticSource,
	m repository.Metrics,
	cacheSvc cache.Service,
) *usecase.Forecaster {
	opts := []usecase.Option{}
	if cfg.Forecast.CacheTTL > 0 {
		opts = append(opts, usecase.WithCache(cacheSvc, cfg.Forecast.CacheTTL))
	}
	return usecase.NewForecaster(log, store, featureSource, synth, m, opts...)
}

// ProvideHandler builds the HTTP API handler.
func ProvideHandler(log *logger.Logger, fc *usecase.Forecaster, store repository.ModelStore) xhttp.Handler {
	return api.NewForecastHandler(log, fc, store)
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *server.App {
	return server.NewApp(cfg, log, handler, cacheSvc)
}
