package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type Optimizer interface {
	Step(params []*Parameter, grads Gradients) error
}

// SGD is plain gradient descent with a fixed learning rate:
//
//	param -= lr * grad
type SGD struct {
	LearnRate float64
}

func NewSGD(learnRate float64) *SGD {
	return &SGD{LearnRate: learnRate}
}

// Step validates every shape before touching any parameter, so a failed step
// leaves the model unchanged.
func (s *SGD) Step(params []*Parameter, grads Gradients) error {
	if len(params) != len(grads) {
		return fmt.Errorf("sgd: %d parameters but %d gradients", len(params), len(grads))
	}
	for i, p := range params {
		gr, gc := grads[i].Dims()
		if shape := p.Shape(); shape != shapeOf(gr, gc) {
			return &ShapeMismatchError{Op: "sgd " + p.Name, Left: shape, Right: shapeOf(gr, gc)}
		}
	}

	for i, p := range params {
		rows, _ := p.Value.Dims()
		for r := 0; r < rows; r++ {
			floats.AddScaled(p.Value.RawRowView(r), -s.LearnRate, grads[i].RawRowView(r))
		}
	}
	return nil
}
