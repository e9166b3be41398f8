// Package report writes training and evaluation results as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/grexie/classifier/pkg/model"
)

func flush(writer *csv.Writer) error {
	writer.Flush()
	return writer.Error()
}

// WriteLossCSV writes one row per training step.
func WriteLossCSV(w io.Writer, history model.LossHistory) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Step", "Loss"}); err != nil {
		return err
	}
	for i, l := range history {
		if err := writer.Write([]string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%0.8f", l)}); err != nil {
			return err
		}
	}
	return flush(writer)
}

func WriteLossSummaryCSV(w io.Writer, history model.LossHistory, window int) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Start", "End", "Loss (Mean)", "Loss (Min)", "Loss (Max)", "Loss (StdDev)"}); err != nil {
		return err
	}
	for _, s := range history.Windows(window) {
		row := []string{
			fmt.Sprintf("%d", s.Start), fmt.Sprintf("%d", s.End),
			fmt.Sprintf("%0.6f", s.Mean), fmt.Sprintf("%0.6f", s.Min), fmt.Sprintf("%0.6f", s.Max), fmt.Sprintf("%0.6f", s.StdDev),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return flush(writer)
}

// WriteConfusionCSV writes actual classes as rows and predicted classes as
// columns, in vocabulary order.
func WriteConfusionCSV(w io.Writer, cm *model.ConfusionMatrix) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"Actual"}, cm.Labels...)); err != nil {
		return err
	}
	for i, label := range cm.Labels {
		row := []string{label}
		for _, v := range cm.Counts[i] {
			row = append(row, fmt.Sprintf("%d", v))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return flush(writer)
}
