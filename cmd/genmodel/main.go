package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"GridSense/internal/predictor"
	"GridSense/internal/registry"
)

// Generates randomly initialized model artifacts for local development. The
// resulting networks are untrained; they only exercise the inference path.
func main() {
	dir := flag.String("dir", "./models", "output directory for model artifacts")
	hidden := flag.Int("hidden", 64, "hidden layer width")
	seed := flag.Uint64("seed", 1, "weight init seed")
	flag.Parse()

	horizons := []int{3, 6, 12, 24}
	if args := flag.Args(); len(args) > 0 {
		horizons = horizons[:0]
		for _, a := range args {
			h, err := strconv.Atoi(a)
			if err != nil || h <= 0 {
				log.Fatalf("invalid horizon %q", a)
			}
			horizons = append(horizons, h)
		}
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	rng := rand.New(rand.NewPCG(*seed, 0))
	inputSize := (predictor.LongWindowSteps + predictor.ShortWindowSteps) * predictor.FeatureCount

	for _, h := range horizons {
		// One prediction every 30 minutes, demand and supply channels.
		steps := h * 60 / predictor.StepMinutes
		saved := predictor.SavedModel{
			Network:        predictor.NewNetwork([]int{inputSize, *hidden, steps * 2}, rng),
			OutputSteps:    steps,
			OutputChannels: 2,
		}

		data, err := json.Marshal(saved)
		if err != nil {
			log.Fatalf("marshal model for %dh: %v", h, err)
		}

		path := filepath.Join(*dir, registry.ArtifactName(h))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s (%d output steps)", path, steps)
	}
}
