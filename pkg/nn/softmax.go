package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax normalises each row independently.
type Softmax struct{}

func (Softmax) Forward(z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		softmaxRow(out.RawRowView(i), z.RawRowView(i))
	}
	return out
}

func softmaxRow(dst, logits []float64) {
	maxLogit := floats.Max(logits)
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxLogit)
		dst[i] = e
		sum += e
	}
	floats.Scale(1/sum, dst)
}

// Backward applies the softmax Jacobian row by row:
// dz_i = s_i * (g_i - sum_j g_j*s_j), where s is the forward output.
func (Softmax) Backward(out, dOut *mat.Dense) (*mat.Dense, error) {
	rows, cols := out.Dims()
	dr, dc := dOut.Dims()
	if rows != dr || cols != dc {
		return nil, &ShapeMismatchError{Op: "softmax backward", Left: shapeOf(rows, cols), Right: shapeOf(dr, dc)}
	}

	dz := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		s := out.RawRowView(i)
		g := dOut.RawRowView(i)
		dot := floats.Dot(s, g)
		row := dz.RawRowView(i)
		for j := range row {
			row[j] = s[j] * (g[j] - dot)
		}
	}
	return dz, nil
}
