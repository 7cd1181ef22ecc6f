package registry

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GridSense/internal/predictor"
	"GridSense/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func writeArtifact(t *testing.T, dir string, horizon, steps int) {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 0))
	inputSize := (predictor.LongWindowSteps + predictor.ShortWindowSteps) * predictor.FeatureCount
	saved := predictor.SavedModel{
		Network:        predictor.NewNetwork([]int{inputSize, 4, steps * 2}, rng),
		OutputSteps:    steps,
		OutputChannels: 2,
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtifactName(horizon)), data, 0o644))
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "model_6h.json", ArtifactName(6))
	assert.Equal(t, "model_24h.json", ArtifactName(24))
}

func TestLoadMixedArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, 6, 12)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtifactName(12)), []byte("not json"), 0o644))

	r := Load(dir, []int{3, 6, 12}, testLogger(t), nil)

	_, ok := r.Lookup(6)
	assert.True(t, ok)
	_, ok = r.Lookup(3)
	assert.False(t, ok, "missing artifact")
	_, ok = r.Lookup(12)
	assert.False(t, ok, "corrupt artifact")
	_, ok = r.Lookup(24)
	assert.False(t, ok, "unconfigured horizon")

	assert.Equal(t, map[string]bool{"3h": false, "6h": true, "12h": false}, r.Status())
}

func TestLoadEmptyDir(t *testing.T) {
	r := Load(t.TempDir(), []int{3, 6}, testLogger(t), nil)

	for _, h := range []int{3, 6} {
		_, ok := r.Lookup(h)
		assert.False(t, ok)
	}
	assert.Equal(t, map[string]bool{"3h": false, "6h": false}, r.Status())
}

func TestHorizonsSorted(t *testing.T) {
	r := Load(t.TempDir(), []int{24, 3, 12, 6}, testLogger(t), nil)
	assert.Equal(t, []int{3, 6, 12, 24}, r.Horizons())
}
