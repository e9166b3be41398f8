package nn

import (
	"gonum.org/v1/gonum/mat"
)

type Loss interface {
	Compute(pred, target *mat.Dense) (float64, error)
	Gradient(pred, target *mat.Dense) (*mat.Dense, error)
}

// MSE is the mean of squared differences over every element of the batch,
// not a per-row mean.
type MSE struct{}

func (MSE) Compute(pred, target *mat.Dense) (float64, error) {
	diff, err := difference(pred, target, "mse")
	if err != nil {
		return 0, err
	}
	r, c := diff.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for _, v := range diff.RawRowView(i) {
			sum += v * v
		}
	}
	return sum / float64(r*c), nil
}

func (MSE) Gradient(pred, target *mat.Dense) (*mat.Dense, error) {
	diff, err := difference(pred, target, "mse gradient")
	if err != nil {
		return nil, err
	}
	r, c := diff.Dims()
	diff.Scale(2/float64(r*c), diff)
	return diff, nil
}

func difference(pred, target *mat.Dense, op string) (*mat.Dense, error) {
	pr, pc := pred.Dims()
	tr, tc := target.Dims()
	if pr != tr || pc != tc {
		return nil, &ShapeMismatchError{Op: op, Left: shapeOf(pr, pc), Right: shapeOf(tr, tc)}
	}
	diff := mat.NewDense(pr, pc, nil)
	diff.Sub(pred, target)
	return diff, nil
}
