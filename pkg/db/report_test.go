package db

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/grexie/classifier/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func sampleModel() *model.Model {
	cm := model.NewConfusionMatrix([]string{"a", "b"})
	cm.Add(0, 0)
	cm.Add(1, 0)
	cm.Add(1, 1)

	m := &model.Model{
		Params:  model.ModelParams{Dataset: "iris.csv", TestFraction: 0.2, Seed: 42, Hidden: 32, Steps: 3, LearnRate: 0.03},
		History: model.LossHistory{0.3, 0.2, 0.1},
		Metrics: model.ModelMetrics{
			Loss:           0.15,
			Accuracy:       2.0 / 3.0,
			Confusion:      cm,
			ClassPrecision: []float64{0.5, 1},
			ClassRecall:    []float64{1, 0.5},
			F1Scores:       []float64{2.0 / 3.0, 2.0 / 3.0},
			Support:        []int{1, 2},
		},
	}
	m.Partition.Train = []int{0, 1, 2, 3}
	m.Partition.Test = []int{4, 5, 6}
	return m
}

func TestNewReport(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	report := NewReport(sampleModel(), now)

	assert.Equal(t, now, report.Run.CreatedAt)
	assert.Equal(t, now.Unix(), report.Run.ID.Timestamp().Unix())
	assert.Equal(t, 0.3, report.Run.InitialLoss)
	assert.Equal(t, 0.1, report.Run.FinalLoss)
	assert.Equal(t, 4, report.Run.TrainSamples)
	assert.Equal(t, 3, report.Run.TestSamples)
	assert.Equal(t, [][]int{{1, 0}, {1, 1}}, report.Run.Confusion)
	assert.Equal(t, "42", report.Run.Params.Seed)

	require.Len(t, report.Classes, 2)
	assert.Equal(t, "b", report.Classes[1].Label)
	assert.Equal(t, 2, report.Classes[1].Support)
	assert.Equal(t, report.Run.ID, report.Classes[0].RunID)
}

func TestRunMarshalsToBSON(t *testing.T) {
	report := NewReport(sampleModel(), time.Now())

	raw, err := bson.Marshal(report.Run)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "iris.csv", doc["dataset"])
	assert.Contains(t, doc, "confusion")
	assert.NotContains(t, doc, "weights")
}

func TestRunKeepsFullSeedRange(t *testing.T) {
	m := sampleModel()
	m.Params.Seed = math.MaxUint64
	report := NewReport(m, time.Now())

	raw, err := bson.Marshal(report.Run)
	require.NoError(t, err)

	var run Run
	require.NoError(t, bson.Unmarshal(raw, &run))
	seed, err := strconv.ParseUint(run.Params.Seed, 10, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), seed)
}
