package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/grexie/classifier/pkg/nn"
	"gonum.org/v1/gonum/mat"
)

var ErrEmptyDataset = errors.New("dataset has no samples")

// Dataset is a feature matrix with an index-aligned label sequence. It is
// not mutated after construction.
type Dataset struct {
	Columns  []string
	Features [][]float64
	Labels   []string
}

func New(columns []string, features [][]float64, labels []string) (*Dataset, error) {
	if err := validate(features, labels); err != nil {
		return nil, err
	}
	if columns == nil {
		columns = make([]string, len(features[0]))
		for i := range columns {
			columns[i] = fmt.Sprintf("x%d", i)
		}
	}
	if len(columns) != len(features[0]) {
		return nil, fmt.Errorf("%d column names for %d features", len(columns), len(features[0]))
	}
	return &Dataset{Columns: columns, Features: features, Labels: labels}, nil
}

func validate(features [][]float64, labels []string) error {
	if len(features) == 0 {
		return ErrEmptyDataset
	}
	width := len(features[0])
	if len(features) != len(labels) {
		return &nn.ShapeMismatchError{Op: "features vs labels", Left: nn.Shape{len(features), width}, Right: nn.Shape{len(labels), 1}}
	}
	for i, row := range features {
		if len(row) != width {
			return &nn.ShapeMismatchError{Op: fmt.Sprintf("feature row %d", i), Left: nn.Shape{1, len(row)}, Right: nn.Shape{1, width}}
		}
	}
	if width == 0 {
		return fmt.Errorf("dataset has no feature columns")
	}
	return nil
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

func (d *Dataset) Width() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// Select returns the rows at indices in the order given.
func (d *Dataset) Select(indices []int) ([][]float64, []string) {
	features := make([][]float64, len(indices))
	labels := make([]string, len(indices))
	for i, idx := range indices {
		features[i] = slices.Clone(d.Features[idx])
		labels[i] = d.Labels[idx]
	}
	return features, labels
}

// Matrix packs rows into a dense matrix.
func Matrix(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	width := len(rows[0])
	m := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}
