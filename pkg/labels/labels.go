// Package labels maps categorical class names to one-hot rows and back.
//
// A Vocabulary assigns each distinct label its position in lexicographic
// order. That order defines the column meaning of every encoded matrix and
// the axes of the confusion matrix, so train and test data must share the
// Vocabulary fitted on the full label sequence.
package labels

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

type UnknownLabelError struct {
	Label string
	Row   int
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label %q at row %d", e.Label, e.Row)
}

type Vocabulary struct {
	classes []string
	index   map[string]int
}

func Fit(labels []string) *Vocabulary {
	classes := slices.Clone(labels)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &Vocabulary{classes: classes, index: index}
}

func (v *Vocabulary) Len() int {
	return len(v.classes)
}

// Classes returns the labels in column order.
func (v *Vocabulary) Classes() []string {
	return slices.Clone(v.classes)
}

func (v *Vocabulary) Label(i int) string {
	return v.classes[i]
}

func (v *Vocabulary) Index(label string) (int, bool) {
	i, ok := v.index[label]
	return i, ok
}

// Encode produces one row per label with a single 1 in the label's column.
func Encode(labels []string, vocab *Vocabulary) (*mat.Dense, error) {
	if len(labels) == 0 {
		return &mat.Dense{}, nil
	}
	if vocab.Len() == 0 {
		return nil, &UnknownLabelError{Label: labels[0], Row: 0}
	}

	oneHot := mat.NewDense(len(labels), vocab.Len(), nil)
	for i, label := range labels {
		class, ok := vocab.Index(label)
		if !ok {
			return nil, &UnknownLabelError{Label: label, Row: i}
		}
		oneHot.Set(i, class, 1.0)
	}
	return oneHot, nil
}

// Decode returns the argmax of row, preferring the lowest index on ties.
func Decode(row []float64) int {
	maxIndex := 0
	for i, value := range row {
		if value > row[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}

// DecodeRows applies Decode to every row of m.
func DecodeRows(m mat.RawMatrixer) []int {
	raw := m.RawMatrix()
	out := make([]int, raw.Rows)
	for i := range out {
		out[i] = Decode(raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols])
	}
	return out
}
