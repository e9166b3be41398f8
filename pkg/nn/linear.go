package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linear computes X·W + b with b broadcast over rows.
type Linear struct {
	Weights *Parameter
	Bias    *Parameter
}

func NewLinear(name string, inputs, outputs int, rng *rand.Rand) *Linear {
	return &Linear{
		Weights: uniformParameter(name+".weights", inputs, outputs, inputs, rng),
		Bias:    uniformParameter(name+".bias", 1, outputs, inputs, rng),
	}
}

func (l *Linear) Forward(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	wr, wc := l.Weights.Value.Dims()
	if cols != wr {
		return nil, &ShapeMismatchError{Op: "linear forward " + l.Weights.Name, Left: shapeOf(rows, cols), Right: shapeOf(wr, wc)}
	}

	out := mat.NewDense(rows, wc, nil)
	out.Mul(x, l.Weights.Value)
	bias := l.Bias.Value.RawRowView(0)
	for i := 0; i < rows; i++ {
		floats.Add(out.RawRowView(i), bias)
	}
	return out, nil
}

// Backward takes the layer input x and dL/dOut and returns dL/dx together
// with the weight and bias gradients.
func (l *Linear) Backward(x, dOut *mat.Dense) (dx, dWeights, dBias *mat.Dense, err error) {
	rows, cols := x.Dims()
	dr, dc := dOut.Dims()
	wr, wc := l.Weights.Value.Dims()
	if rows != dr || cols != wr || dc != wc {
		return nil, nil, nil, &ShapeMismatchError{Op: "linear backward " + l.Weights.Name, Left: shapeOf(rows, cols), Right: shapeOf(dr, dc)}
	}

	dWeights = mat.NewDense(wr, wc, nil)
	dWeights.Mul(x.T(), dOut)

	dBias = mat.NewDense(1, wc, nil)
	acc := dBias.RawRowView(0)
	for i := 0; i < dr; i++ {
		floats.Add(acc, dOut.RawRowView(i))
	}

	dx = mat.NewDense(rows, cols, nil)
	dx.Mul(dOut, l.Weights.Value.T())
	return dx, dWeights, dBias, nil
}
