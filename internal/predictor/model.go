package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Feature window geometry shared between the model artifacts and the
// feature pipeline. Models consume a 7-day long window and a 12-hour
// short window at a 30-minute step, 8 features per step.
const (
	StepMinutes      = 30
	LongWindowSteps  = 168
	ShortWindowSteps = 24
	FeatureCount     = 8
)

// SavedModel is a JSON-serialized inference artifact: a trained network plus
// the output geometry needed to decode its flat output vector.
type SavedModel struct {
	Network        *Network `json:"network"`
	OutputSteps    int      `json:"output_steps"`
	OutputChannels int      `json:"output_channels"`
}

// Model is a loaded, validated forecast model ready for inference.
type Model struct {
	net            *Network
	outputSteps    int
	outputChannels int
}

// Load parses and validates a serialized model artifact.
func Load(data []byte) (*Model, error) {
	var saved SavedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if saved.Network == nil {
		return nil, fmt.Errorf("model artifact has no network")
	}
	if err := saved.Network.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network: %w", err)
	}
	if saved.OutputChannels != 1 && saved.OutputChannels != 2 {
		return nil, fmt.Errorf("unsupported output channels: %d", saved.OutputChannels)
	}
	if saved.OutputSteps <= 0 {
		return nil, fmt.Errorf("invalid output steps: %d", saved.OutputSteps)
	}

	wantIn := (LongWindowSteps + ShortWindowSteps) * FeatureCount
	if got := saved.Network.InputSize(); got != wantIn {
		return nil, fmt.Errorf("network input size %d, want %d", got, wantIn)
	}
	wantOut := saved.OutputSteps * saved.OutputChannels
	if got := saved.Network.OutputSize(); got != wantOut {
		return nil, fmt.Errorf("network output size %d, want %d", got, wantOut)
	}

	return &Model{
		net:            saved.Network,
		outputSteps:    saved.OutputSteps,
		outputChannels: saved.OutputChannels,
	}, nil
}

// LoadFile loads a model artifact from disk.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return Load(data)
}

// OutputSteps returns the number of forecast timesteps the model emits.
func (m *Model) OutputSteps() int {
	return m.outputSteps
}

// Predict flattens the long and short windows into a single input vector,
// runs a forward pass and splits the output into demand and supply series.
// Single-channel models predict demand only; supply is zero-filled.
func (m *Model) Predict(ctx context.Context, long, short [][]float64) (demand, supply []float64, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := checkWindow("long", long, LongWindowSteps); err != nil {
		return nil, nil, err
	}
	if err := checkWindow("short", short, ShortWindowSteps); err != nil {
		return nil, nil, err
	}

	input := make([]float64, 0, (LongWindowSteps+ShortWindowSteps)*FeatureCount)
	for _, row := range long {
		input = append(input, row...)
	}
	for _, row := range short {
		input = append(input, row...)
	}

	out := m.net.Forward(input)

	demand = make([]float64, m.outputSteps)
	supply = make([]float64, m.outputSteps)
	switch m.outputChannels {
	case 2:
		for i := 0; i < m.outputSteps; i++ {
			demand[i] = out[i*2]
			supply[i] = out[i*2+1]
		}
	case 1:
		copy(demand, out)
	}
	return demand, supply, nil
}

func checkWindow(name string, w [][]float64, steps int) error {
	if len(w) != steps {
		return fmt.Errorf("%s window has %d steps, want %d", name, len(w), steps)
	}
	for i, row := range w {
		if len(row) != FeatureCount {
			return fmt.Errorf("%s window step %d has %d features, want %d", name, i, len(row), FeatureCount)
		}
	}
	return nil
}
