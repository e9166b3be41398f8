package nn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

const DefaultHidden = 32

// Cache holds the intermediate values of one forward pass.
type Cache struct {
	X      *mat.Dense
	Z1     *mat.Dense
	A1     *mat.Dense
	Z2     *mat.Dense
	Output *mat.Dense
}

// DenseClassifier is linear -> relu -> linear -> softmax. It never updates
// its own parameters; see ApplyGradients.
type DenseClassifier struct {
	hidden  *Linear
	act     ReLU
	output  *Linear
	softmax Softmax
}

func NewDenseClassifier(inputs, hidden, classes int, rng *rand.Rand) (*DenseClassifier, error) {
	if inputs <= 0 || hidden <= 0 || classes <= 0 {
		return nil, fmt.Errorf("invalid topology %d-%d-%d", inputs, hidden, classes)
	}
	if rng == nil {
		return nil, fmt.Errorf("random generator is required")
	}

	return &DenseClassifier{
		hidden: NewLinear("hidden", inputs, hidden, rng),
		output: NewLinear("output", hidden, classes, rng),
	}, nil
}

func (m *DenseClassifier) Inputs() int {
	r, _ := m.hidden.Weights.Value.Dims()
	return r
}

func (m *DenseClassifier) Classes() int {
	_, c := m.output.Weights.Value.Dims()
	return c
}

// Parameters returns W1, b1, W2, b2 in that order.
func (m *DenseClassifier) Parameters() []*Parameter {
	return []*Parameter{m.hidden.Weights, m.hidden.Bias, m.output.Weights, m.output.Bias}
}

func (m *DenseClassifier) Forward(x *mat.Dense) (*mat.Dense, *Cache, error) {
	if rows, cols := x.Dims(); rows == 0 {
		return nil, nil, &ShapeMismatchError{Op: "forward", Left: shapeOf(rows, cols), Right: shapeOf(0, m.Inputs())}
	}

	z1, err := m.hidden.Forward(x)
	if err != nil {
		return nil, nil, err
	}
	a1 := m.act.Forward(z1)
	z2, err := m.output.Forward(a1)
	if err != nil {
		return nil, nil, err
	}
	out := m.softmax.Forward(z2)

	return out, &Cache{X: x, Z1: z1, A1: a1, Z2: z2, Output: out}, nil
}

// Backward propagates dL/dPredictions back through the cached forward pass.
func (m *DenseClassifier) Backward(cache *Cache, dPred *mat.Dense) (Gradients, error) {
	if cache == nil {
		return nil, fmt.Errorf("backward called without a forward cache")
	}

	dz2, err := m.softmax.Backward(cache.Output, dPred)
	if err != nil {
		return nil, err
	}
	da1, dw2, db2, err := m.output.Backward(cache.A1, dz2)
	if err != nil {
		return nil, err
	}
	dz1, err := m.act.Backward(cache.Z1, da1)
	if err != nil {
		return nil, err
	}
	_, dw1, db1, err := m.hidden.Backward(cache.X, dz1)
	if err != nil {
		return nil, err
	}

	return Gradients{dw1, db1, dw2, db2}, nil
}

func (m *DenseClassifier) ApplyGradients(grads Gradients, opt Optimizer) error {
	return opt.Step(m.Parameters(), grads)
}
