package model

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ModelParams struct {
	Dataset string
	Header  string

	TestFraction float64
	Seed         uint64
	Normalize    bool

	Hidden    int
	Steps     int
	LearnRate float64
	LogEvery  int
}

func (m *ModelParams) Write(w io.Writer, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"CLASSIFIER_DATASET", m.Dataset},
		{"CLASSIFIER_HEADER", m.Header},
		{"CLASSIFIER_TEST_FRACTION", fmt.Sprintf("%0.04f", m.TestFraction)},
		{"CLASSIFIER_SEED", fmt.Sprintf("%d", m.Seed)},
		{"CLASSIFIER_NORMALIZE", fmt.Sprintf("%t", m.Normalize)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"CLASSIFIER_HIDDEN", fmt.Sprintf("%d", m.Hidden)},
		{"CLASSIFIER_STEPS", fmt.Sprintf("%d", m.Steps)},
		{"CLASSIFIER_LEARN_RATE", fmt.Sprintf("%.06f", m.LearnRate)},
		{"CLASSIFIER_LOG_EVERY", fmt.Sprintf("%d", m.LogEvery)},
	})
	t.Render()
}

func NewModelParamsFromDefaults() ModelParams {
	return ModelParams{
		Dataset: Dataset(),
		Header:  Header(),

		TestFraction: TestFraction(),
		Seed:         Seed(),
		Normalize:    Normalize(),

		Hidden:    Hidden(),
		Steps:     Steps(),
		LearnRate: LearnRate(),
		LogEvery:  LogEvery(),
	}
}

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 32); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envUint64(name string, def func() uint64) func() uint64 {
	return func() uint64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseUint(v, 10, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envFloat64(name string, def func() float64, dec func(v float64) float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return dec(value)
	}
}

func envBool(name string, def func() bool) func() bool {
	return func() bool {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseBool(v); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}

var (
	Dataset      = envString("CLASSIFIER_DATASET", func() string { return "datasets/iris.csv" })
	Header       = envString("CLASSIFIER_HEADER", func() string { return "auto" })
	CachePath    = envString("CLASSIFIER_CACHE", func() string { return ".cache/datasets" })
	LossCSV      = envString("CLASSIFIER_LOSS_CSV", func() string { return "" })
	ConfusionCSV = envString("CLASSIFIER_CONFUSION_CSV", func() string { return "" })
)

var (
	// TestFraction is deliberately unbounded: an invalid value must reach the
	// splitter and fail there.
	TestFraction = envFloat64("CLASSIFIER_TEST_FRACTION", func() float64 { return 0.2 }, func(v float64) float64 { return v })
	Seed         = envUint64("CLASSIFIER_SEED", func() uint64 { return 42 })
	Normalize    = envBool("CLASSIFIER_NORMALIZE", func() bool { return false })
)

var (
	Hidden    = envInt("CLASSIFIER_HIDDEN", func() int { return 32 }, BoundHidden)
	Steps     = envInt("CLASSIFIER_STEPS", func() int { return 500 }, BoundSteps)
	LearnRate = envFloat64("CLASSIFIER_LEARN_RATE", func() float64 { return 0.03 }, BoundLearnRate)
	LogEvery  = envInt("CLASSIFIER_LOG_EVERY", func() int { return 0 }, BoundLogEvery)
)
