package model

import (
	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/labels"
	"github.com/grexie/classifier/pkg/nn"
)

// Prediction maps each class label to its predicted probability.
type Prediction map[string]float64

// Predict classifies a single raw feature row, applying the training scaler
// when one was fitted.
func (m *Model) Predict(feature []float64) (string, Prediction, error) {
	if len(feature) != m.Network.Inputs() {
		return "", nil, &nn.ShapeMismatchError{Op: "predict", Left: nn.Shape{1, len(feature)}, Right: nn.Shape{1, m.Network.Inputs()}}
	}
	if m.Scaler != nil {
		feature = m.Scaler.Transform(feature)
	}

	pred, _, err := m.Network.Forward(dataset.Matrix([][]float64{feature}))
	if err != nil {
		return "", nil, err
	}

	row := pred.RawRowView(0)
	prediction := make(Prediction, len(row))
	for i, p := range row {
		prediction[m.Vocabulary.Label(i)] = p
	}
	return m.Vocabulary.Label(labels.Decode(row)), prediction, nil
}
