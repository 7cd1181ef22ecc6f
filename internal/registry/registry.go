package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"GridSense/internal/domain/repository"
	"GridSense/internal/predictor"
	"GridSense/pkg/logger"
)

// ArtifactName returns the expected on-disk file name for a horizon's model.
func ArtifactName(horizonHours int) string {
	return fmt.Sprintf("model_%dh.json", horizonHours)
}

// Registry holds the per-horizon models loaded at startup. A horizon with no
// usable artifact stays registered without a model so that requests for it
// fall back to the synthetic generator.
type Registry struct {
	horizons []int
	models   map[int]*predictor.Model
}

// Load scans dir for model artifacts covering the configured horizons.
// Missing or corrupt artifacts are logged and skipped; the registry never
// fails to load.
func Load(dir string, horizons []int, log *logger.Logger, metrics repository.Metrics) *Registry {
	r := &Registry{
		horizons: append([]int(nil), horizons...),
		models:   make(map[int]*predictor.Model, len(horizons)),
	}
	sort.Ints(r.horizons)

	for _, h := range r.horizons {
		path := filepath.Join(dir, ArtifactName(h))
		loaded := false

		if _, err := os.Stat(path); err != nil {
			log.Warn("model artifact not found, using fallback",
				logger.Int("horizon_hours", h),
				logger.String("path", path))
		} else if model, err := predictor.LoadFile(path); err != nil {
			log.Error("failed to load model artifact, using fallback",
				logger.Int("horizon_hours", h),
				logger.String("path", path),
				logger.Error(err))
		} else {
			r.models[h] = model
			loaded = true
			log.Info("model loaded",
				logger.Int("horizon_hours", h),
				logger.Int("output_steps", model.OutputSteps()))
		}

		if metrics != nil {
			metrics.SetModelLoaded(h, loaded)
		}
	}

	return r
}

// Lookup returns the model for an exactly matching horizon.
func (r *Registry) Lookup(horizonHours int) (repository.ForecastModel, bool) {
	m, ok := r.models[horizonHours]
	if !ok {
		return nil, false
	}
	return m, true
}

// Status reports per-horizon availability, keyed "3h", "6h" and so on.
func (r *Registry) Status() map[string]bool {
	status := make(map[string]bool, len(r.horizons))
	for _, h := range r.horizons {
		_, ok := r.models[h]
		status[fmt.Sprintf("%dh", h)] = ok
	}
	return status
}

// Horizons returns the configured horizons in ascending order.
func (r *Registry) Horizons() []int {
	return append([]int(nil), r.horizons...)
}
