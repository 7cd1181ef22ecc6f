package features

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"GridSense/internal/predictor"
)

// RandomSource emits normally distributed placeholder windows until a real
// feature-extraction pipeline replaces it. The window shapes match what the
// model artifacts were trained on.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a source seeded for reproducible windows. Seed 0
// derives a seed from the wall clock.
func NewRandomSource(seed uint64) *RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSource{
		rng: rand.New(rand.NewPCG(seed, 0)),
	}
}

// Windows returns a long and a short feature window for the horizon. The
// horizon does not change the shapes; models for every horizon share the
// same input geometry.
func (s *RandomSource) Windows(ctx context.Context, horizonHours int) (long, short [][]float64, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	long = s.window(predictor.LongWindowSteps)
	short = s.window(predictor.ShortWindowSteps)
	return long, short, nil
}

func (s *RandomSource) window(steps int) [][]float64 {
	w := make([][]float64, steps)
	for i := range w {
		row := make([]float64, predictor.FeatureCount)
		for j := range row {
			row[j] = s.rng.NormFloat64()
		}
		w[i] = row
	}
	return w
}
