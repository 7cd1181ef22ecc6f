package predictor

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Layer is a fully-connected neural network layer.
type Layer struct {
	Weights [][]float64 `json:"weights"` // [out][in]
	Biases  []float64   `json:"biases"`
}

// Network is a feedforward neural network with ReLU hidden layers and a
// linear output layer. This package only runs inference; artifacts are
// trained offline and shipped as JSON.
type Network struct {
	Layers []Layer `json:"layers"`
}

// NewNetwork creates a network with He initialization.
// sizes specifies the number of neurons in each layer, e.g. [1536, 64, 12].
func NewNetwork(sizes []int, rng *rand.Rand) *Network {
	n := &Network{
		Layers: make([]Layer, len(sizes)-1),
	}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		stddev := math.Sqrt(2.0 / float64(in)) // He init
		layer := Layer{
			Weights: make([][]float64, out),
			Biases:  make([]float64, out),
		}
		for j := 0; j < out; j++ {
			layer.Weights[j] = make([]float64, in)
			for k := 0; k < in; k++ {
				layer.Weights[j][k] = rng.NormFloat64() * stddev
			}
		}
		n.Layers[i] = layer
	}
	return n
}

// InputSize returns the expected input vector length.
func (n *Network) InputSize() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// OutputSize returns the output vector length.
func (n *Network) OutputSize() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return len(n.Layers[len(n.Layers)-1].Weights)
}

// Forward computes the network output for a single input vector.
// Hidden layers use ReLU; the output layer is linear.
func (n *Network) Forward(input []float64) []float64 {
	x := input
	for i := range n.Layers {
		l := &n.Layers[i]
		out := len(l.Weights)
		y := make([]float64, out)
		for j := 0; j < out; j++ {
			sum := l.Biases[j]
			for k, w := range l.Weights[j] {
				sum += w * x[k]
			}
			y[j] = sum
		}

		// ReLU for all layers except the last (linear output).
		if i < len(n.Layers)-1 {
			for j := range y {
				if y[j] < 0 {
					y[j] = 0
				}
			}
		}

		x = y
	}
	return x
}

// Validate checks the network geometry: non-empty rectangular layers with
// matching consecutive sizes and bias lengths.
func (n *Network) Validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	prevOut := -1
	for i, l := range n.Layers {
		out := len(l.Weights)
		if out == 0 {
			return fmt.Errorf("layer %d has no neurons", i)
		}
		if len(l.Biases) != out {
			return fmt.Errorf("layer %d: %d biases for %d neurons", i, len(l.Biases), out)
		}
		in := len(l.Weights[0])
		if in == 0 {
			return fmt.Errorf("layer %d has no inputs", i)
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return fmt.Errorf("layer %d: ragged weight row %d", i, j)
			}
		}
		if prevOut >= 0 && in != prevOut {
			return fmt.Errorf("layer %d expects %d inputs, previous layer outputs %d", i, in, prevOut)
		}
		prevOut = out
	}
	return nil
}
