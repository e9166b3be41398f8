package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type ReLU struct{}

func (ReLU) Forward(z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, z)
	return out
}

// Backward zeroes the upstream gradient wherever z <= 0.
func (ReLU) Backward(z, dOut *mat.Dense) (*mat.Dense, error) {
	rows, cols := z.Dims()
	dr, dc := dOut.Dims()
	if rows != dr || cols != dc {
		return nil, &ShapeMismatchError{Op: "relu backward", Left: shapeOf(rows, cols), Right: shapeOf(dr, dc)}
	}

	dz := mat.NewDense(rows, cols, nil)
	dz.Apply(func(i, j int, v float64) float64 {
		if z.At(i, j) > 0 {
			return v
		}
		return 0
	}, dOut)
	return dz, nil
}
