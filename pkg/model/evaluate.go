package model

import (
	"fmt"

	"github.com/grexie/classifier/pkg/labels"
	"github.com/grexie/classifier/pkg/nn"
	"gonum.org/v1/gonum/mat"
)

type Evaluation struct {
	Loss          float64
	Accuracy      float64
	Confusion     *ConfusionMatrix
	Actual        []int
	Predicted     []int
	Probabilities *mat.Dense
}

// Evaluate runs a single forward pass over the test split. The network is
// only read.
func Evaluate(net *nn.DenseClassifier, loss nn.Loss, x, y *mat.Dense, vocab *labels.Vocabulary) (*Evaluation, error) {
	if yr, yc := y.Dims(); yc != vocab.Len() {
		return nil, &nn.ShapeMismatchError{Op: "evaluate targets", Left: nn.Shape{yr, yc}, Right: nn.Shape{yr, vocab.Len()}}
	}

	pred, _, err := net.Forward(x)
	if err != nil {
		return nil, fmt.Errorf("forward pass failed: %w", err)
	}
	testLoss, err := loss.Compute(pred, y)
	if err != nil {
		return nil, fmt.Errorf("test loss failed: %w", err)
	}

	predicted := labels.DecodeRows(pred)
	actual := labels.DecodeRows(y)

	confusion := NewConfusionMatrix(vocab.Classes())
	correct := 0
	for i := range actual {
		confusion.Add(actual[i], predicted[i])
		if actual[i] == predicted[i] {
			correct++
		}
	}

	return &Evaluation{
		Loss:          testLoss,
		Accuracy:      float64(correct) / float64(len(actual)),
		Confusion:     confusion,
		Actual:        actual,
		Predicted:     predicted,
		Probabilities: pred,
	}, nil
}
