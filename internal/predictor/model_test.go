package predictor

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkForward(t *testing.T) {
	// Hidden layer with ReLU, linear output. Hand-checked:
	// hidden = relu([1*1 + (-1)*2 + 0, 1*(-1) + (-1)*1 + 1]) = relu([-1, -1]) = [0, 0]
	// out    = [0*3 + 0*4 + 5] = [5]
	n := &Network{
		Layers: []Layer{
			{
				Weights: [][]float64{{1, 2}, {-1, 1}},
				Biases:  []float64{0, 1},
			},
			{
				Weights: [][]float64{{3, 4}},
				Biases:  []float64{5},
			},
		},
	}
	require.NoError(t, n.Validate())
	assert.Equal(t, 2, n.InputSize())
	assert.Equal(t, 1, n.OutputSize())

	out := n.Forward([]float64{1, -1})
	require.Len(t, out, 1)
	assert.InDelta(t, 5.0, out[0], 1e-9)
}

func TestNetworkForwardLinearOutput(t *testing.T) {
	// A single layer has no ReLU, so negative outputs pass through.
	n := &Network{
		Layers: []Layer{
			{
				Weights: [][]float64{{1}},
				Biases:  []float64{-10},
			},
		},
	}
	out := n.Forward([]float64{2})
	assert.InDelta(t, -8.0, out[0], 1e-9)
}

func TestNetworkValidate(t *testing.T) {
	tests := []struct {
		name string
		net  *Network
	}{
		{"empty", &Network{}},
		{
			"ragged weights",
			&Network{Layers: []Layer{{
				Weights: [][]float64{{1, 2}, {1}},
				Biases:  []float64{0, 0},
			}}},
		},
		{
			"bias mismatch",
			&Network{Layers: []Layer{{
				Weights: [][]float64{{1, 2}},
				Biases:  []float64{0, 0},
			}}},
		},
		{
			"layer size mismatch",
			&Network{Layers: []Layer{
				{Weights: [][]float64{{1, 2}, {3, 4}}, Biases: []float64{0, 0}},
				{Weights: [][]float64{{1, 2, 3}}, Biases: []float64{0}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.net.Validate())
		})
	}
}

func TestNewNetworkGeometry(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	n := NewNetwork([]int{1536, 64, 12}, rng)

	require.NoError(t, n.Validate())
	assert.Equal(t, 1536, n.InputSize())
	assert.Equal(t, 12, n.OutputSize())
}

func artifactBytes(t *testing.T, steps, channels int) []byte {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 0))
	inputSize := (LongWindowSteps + ShortWindowSteps) * FeatureCount
	saved := SavedModel{
		Network:        NewNetwork([]int{inputSize, 8, steps * channels}, rng),
		OutputSteps:    steps,
		OutputChannels: channels,
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	return data
}

func TestLoad(t *testing.T) {
	m, err := Load(artifactBytes(t, 12, 2))
	require.NoError(t, err)
	assert.Equal(t, 12, m.OutputSteps())
}

func TestLoadRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"corrupt json", []byte(`{"network": [`)},
		{"no network", []byte(`{"output_steps": 6, "output_channels": 2}`)},
		{"zero steps", mutateArtifact(t, 12, 2, func(s *SavedModel) { s.OutputSteps = 0 })},
		{"bad channels", mutateArtifact(t, 12, 2, func(s *SavedModel) { s.OutputChannels = 3 })},
		{"steps mismatch", mutateArtifact(t, 12, 2, func(s *SavedModel) { s.OutputSteps = 10 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.data)
			assert.Error(t, err)
		})
	}
}

func mutateArtifact(t *testing.T, steps, channels int, mutate func(*SavedModel)) []byte {
	t.Helper()
	var saved SavedModel
	require.NoError(t, json.Unmarshal(artifactBytes(t, steps, channels), &saved))
	mutate(&saved)
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	return data
}

func zeroWindow(steps int) [][]float64 {
	w := make([][]float64, steps)
	for i := range w {
		w[i] = make([]float64, FeatureCount)
	}
	return w
}

// biasModel builds a single-layer network with zero weights, so the output
// equals the biases regardless of input.
func biasModel(t *testing.T, steps, channels int, biases []float64) *Model {
	t.Helper()
	inputSize := (LongWindowSteps + ShortWindowSteps) * FeatureCount
	weights := make([][]float64, len(biases))
	for i := range weights {
		weights[i] = make([]float64, inputSize)
	}
	saved := SavedModel{
		Network:        &Network{Layers: []Layer{{Weights: weights, Biases: biases}}},
		OutputSteps:    steps,
		OutputChannels: channels,
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	m, err := Load(data)
	require.NoError(t, err)
	return m
}

func TestPredictTwoChannelSplit(t *testing.T) {
	m := biasModel(t, 2, 2, []float64{10, 20, 30, 40})

	demand, supply, err := m.Predict(context.Background(), zeroWindow(LongWindowSteps), zeroWindow(ShortWindowSteps))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30}, demand)
	assert.Equal(t, []float64{20, 40}, supply)
}

func TestPredictSingleChannelZeroSupply(t *testing.T) {
	m := biasModel(t, 2, 1, []float64{7, 8})

	demand, supply, err := m.Predict(context.Background(), zeroWindow(LongWindowSteps), zeroWindow(ShortWindowSteps))
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8}, demand)
	assert.Equal(t, []float64{0, 0}, supply)
}

func TestPredictValidatesWindows(t *testing.T) {
	m := biasModel(t, 2, 2, []float64{1, 2, 3, 4})
	ctx := context.Background()

	_, _, err := m.Predict(ctx, zeroWindow(10), zeroWindow(ShortWindowSteps))
	assert.Error(t, err)

	_, _, err = m.Predict(ctx, zeroWindow(LongWindowSteps), zeroWindow(5))
	assert.Error(t, err)

	short := zeroWindow(ShortWindowSteps)
	short[3] = []float64{1, 2}
	_, _, err = m.Predict(ctx, zeroWindow(LongWindowSteps), short)
	assert.Error(t, err)
}

func TestPredictHonorsContext(t *testing.T) {
	m := biasModel(t, 1, 1, []float64{1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := m.Predict(ctx, zeroWindow(LongWindowSteps), zeroWindow(ShortWindowSteps))
	assert.ErrorIs(t, err, context.Canceled)
}
