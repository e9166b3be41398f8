package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Parameter is a named learnable matrix. Biases are stored as 1xN rows so
// every parameter can be updated by the same optimizer code.
type Parameter struct {
	Name  string
	Value *mat.Dense
}

func (p *Parameter) Shape() Shape {
	r, c := p.Value.Dims()
	return shapeOf(r, c)
}

// Gradients is aligned index-for-index with the parameter slice it was
// computed for.
type Gradients []*mat.Dense

// uniformParameter fills a rows x cols matrix from U(-1/sqrt(fanIn), 1/sqrt(fanIn)).
func uniformParameter(name string, rows, cols, fanIn int, rng *rand.Rand) *Parameter {
	limit := 1 / math.Sqrt(float64(fanIn))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * limit
	}
	return &Parameter{Name: name, Value: mat.NewDense(rows, cols, data)}
}
