package model

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

// ModelMetrics holds per-class scores as fractions in [0, 1]. Tables render
// them as percentages.
type ModelMetrics struct {
	Loss           float64
	Accuracy       float64
	Confusion      *ConfusionMatrix
	ClassPrecision []float64
	ClassRecall    []float64
	F1Scores       []float64
	Support        []int
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func (m *ModelMetrics) MacroPrecision() float64 {
	return mean(m.ClassPrecision)
}

func (m *ModelMetrics) MacroRecall() float64 {
	return mean(m.ClassRecall)
}

func (m *ModelMetrics) MacroF1() float64 {
	return mean(m.F1Scores)
}

func percent(v float64) string {
	return fmt.Sprintf("%6.2f%%", v*100)
}

func (m ModelMetrics) Write(w io.Writer) error {
	if m.Confusion == nil {
		return fmt.Errorf("no confusion matrix to write")
	}
	classes := m.Confusion.Labels

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Confusion Matrix")
	header := table.Row{""}
	for _, label := range classes {
		header = append(header, label)
	}
	t.AppendHeader(header)
	rowSums := m.Confusion.RowSums()
	for i, label := range classes {
		row := table.Row{label}
		for j := range classes {
			if rowSums[i] == 0 {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%d (%s)", m.Confusion.Counts[i][j], percent(float64(m.Confusion.Counts[i][j])/float64(rowSums[i]))))
			}
		}
		t.AppendRow(row)
	}
	footer := table.Row{"ACCURACY"}
	for range len(classes) - 1 {
		footer = append(footer, "")
	}
	footer = append(footer, percent(m.Accuracy))
	t.AppendFooter(footer)
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Class Metrics")
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	total := 0
	for i, label := range classes {
		t.AppendRow(table.Row{label, percent(m.ClassPrecision[i]), percent(m.ClassRecall[i]), percent(m.F1Scores[i]), fmt.Sprintf("%d", m.Support[i])})
		total += m.Support[i]
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"", percent(m.MacroPrecision()), percent(m.MacroRecall()), percent(m.MacroF1()), fmt.Sprintf("%d", total)})
	t.AppendFooter(table.Row{"LOSS", fmt.Sprintf("%.6f", m.Loss)})
	t.Render()

	return nil
}

func calculateMetrics(eval *Evaluation) ModelMetrics {
	confusion := eval.Confusion
	numClasses := len(confusion.Counts)
	metrics := ModelMetrics{
		Loss:           eval.Loss,
		Accuracy:       eval.Accuracy,
		Confusion:      confusion,
		ClassPrecision: make([]float64, numClasses),
		ClassRecall:    make([]float64, numClasses),
		F1Scores:       make([]float64, numClasses),
		Support:        confusion.RowSums(),
	}

	for i := 0; i < numClasses; i++ {
		truePositives := confusion.Counts[i][i]
		falsePositives := 0
		falseNegatives := 0

		for j := 0; j < numClasses; j++ {
			if i != j {
				falsePositives += confusion.Counts[j][i]
				falseNegatives += confusion.Counts[i][j]
			}
		}

		if truePositives+falsePositives > 0 {
			metrics.ClassPrecision[i] = float64(truePositives) / float64(truePositives+falsePositives)
		}
		if truePositives+falseNegatives > 0 {
			metrics.ClassRecall[i] = float64(truePositives) / float64(truePositives+falseNegatives)
		}
		if metrics.ClassPrecision[i]+metrics.ClassRecall[i] > 0 {
			metrics.F1Scores[i] = 2 * (metrics.ClassPrecision[i] * metrics.ClassRecall[i]) /
				(metrics.ClassPrecision[i] + metrics.ClassRecall[i])
		}
	}

	return metrics
}
