package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"GridSense/internal/domain/models"
)

// Series shape. Points are spaced two minutes apart, thirty per hour.
const (
	PointsPerHour = 30
	StepMinutes   = 2
)

// Demand and supply curve parameters, in megawatts.
const (
	baseDemand           = 30000.0
	demandCycleAmplitude = 2000.0
	demandNoiseRange     = 200

	solarPeak = 8000.0

	windBase           = 5000.0
	windCycleAmplitude = 1000.0
	windNoiseRange     = 500

	solarStartHour = 6
	solarEndHour   = 18
)

// Generator produces synthetic demand/supply series when no trained model
// covers the requested horizon. Demand follows a slow sinusoid around a base
// load, supply is solar gated to daylight hours plus cyclic wind, both with
// uniform noise.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock used for point timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithSeed seeds the noise source for reproducible series. Seed 0 derives a
// seed from the wall clock.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// NewGenerator creates a generator with a clock-seeded noise source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns horizonHours of synthetic points starting at the current
// time, one sample every two minutes.
func (g *Generator) Generate(horizonHours int) ([]models.ForecastPoint, error) {
	if horizonHours <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonHours)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.now()
	count := horizonHours * PointsPerHour
	points := make([]models.ForecastPoint, 0, count)

	for i := 0; i < count; i++ {
		ts := start.Add(time.Duration(i) * StepMinutes * time.Minute)

		demand := baseDemand +
			demandCycleAmplitude*math.Sin(float64(i)/10) +
			g.noise(demandNoiseRange)

		wind := windBase +
			windCycleAmplitude*math.Sin(float64(i)/5) +
			g.noise(windNoiseRange)
		supply := solarAt(ts) + wind

		points = append(points, models.NewForecastPoint(ts, demand, supply))
	}

	return points, nil
}

// noise returns a uniform sample in [-r, r).
func (g *Generator) noise(r int) float64 {
	return float64(g.rng.IntN(2*r) - r)
}

// solarAt models solar output as a half sine over the daylight window,
// peaking at noon and zero outside it.
func solarAt(ts time.Time) float64 {
	hour := ts.Hour()
	if hour < solarStartHour || hour > solarEndHour {
		return 0
	}
	solar := solarPeak * math.Sin(float64(hour-solarStartHour)*math.Pi/12)
	if solar < 0 {
		return 0
	}
	return solar
}
