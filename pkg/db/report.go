package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/grexie/classifier/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RunsCollection    = "runs"
	ClassesCollection = "run_classes"
)

type RunParams struct {
	TestFraction float64 `bson:"testFraction"`
	Seed         string  `bson:"seed"`
	Normalize    bool    `bson:"normalize"`
	Hidden       int     `bson:"hidden"`
	Steps        int     `bson:"steps"`
	LearnRate    float64 `bson:"learnRate"`
}

// Run summarises one training run. Model weights are never stored.
type Run struct {
	ID        primitive.ObjectID `bson:"_id"`
	CreatedAt time.Time          `bson:"createdAt"`
	Dataset   string             `bson:"dataset"`
	Params    RunParams          `bson:"params"`

	TrainSamples int `bson:"trainSamples"`
	TestSamples  int `bson:"testSamples"`

	InitialLoss float64 `bson:"initialLoss"`
	FinalLoss   float64 `bson:"finalLoss"`
	TestLoss    float64 `bson:"testLoss"`
	Accuracy    float64 `bson:"accuracy"`

	Labels    []string `bson:"labels"`
	Confusion [][]int  `bson:"confusion"`
}

type ClassResult struct {
	RunID     primitive.ObjectID `bson:"runId"`
	Label     string             `bson:"label"`
	Precision float64            `bson:"precision"`
	Recall    float64            `bson:"recall"`
	F1Score   float64            `bson:"f1Score"`
	Support   int                `bson:"support"`
}

type Report struct {
	Run     Run
	Classes []ClassResult
}

func NewReport(m *model.Model, now time.Time) Report {
	id := primitive.NewObjectIDFromTimestamp(now)

	initial := 0.0
	if len(m.History) > 0 {
		initial = m.History[0]
	}

	metrics := m.Metrics
	report := Report{
		Run: Run{
			ID:        id,
			CreatedAt: now.UTC(),
			Dataset:   m.Params.Dataset,
			Params: RunParams{
				TestFraction: m.Params.TestFraction,
				// bson has no unsigned 64-bit type
				Seed:      strconv.FormatUint(m.Params.Seed, 10),
				Normalize: m.Params.Normalize,
				Hidden:    m.Params.Hidden,
				Steps:     m.Params.Steps,
				LearnRate: m.Params.LearnRate,
			},
			TrainSamples: len(m.Partition.Train),
			TestSamples:  len(m.Partition.Test),
			InitialLoss:  initial,
			FinalLoss:    m.History.Final(),
			TestLoss:     metrics.Loss,
			Accuracy:     metrics.Accuracy,
			Labels:       metrics.Confusion.Labels,
			Confusion:    metrics.Confusion.Counts,
		},
	}
	for i, label := range metrics.Confusion.Labels {
		report.Classes = append(report.Classes, ClassResult{
			RunID:     id,
			Label:     label,
			Precision: metrics.ClassPrecision[i],
			Recall:    metrics.ClassRecall[i],
			F1Score:   metrics.F1Scores[i],
			Support:   metrics.Support[i],
		})
	}
	return report
}

func EnsureReportIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureIndex(db, ctx, RunsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("dataset_createdAt"),
	}); err != nil {
		return fmt.Errorf("unable to ensure %s index: %w", RunsCollection, err)
	}
	if err := EnsureIndex(db, ctx, ClassesCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "runId", Value: 1}, {Key: "label", Value: 1}},
		Options: options.Index().SetName("runId_label").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("unable to ensure %s index: %w", ClassesCollection, err)
	}
	return nil
}

// SaveReport stores the run and its per-class results together.
func SaveReport(ctx context.Context, db *mongo.Database, report Report, transactional bool) error {
	if err := EnsureReportIndexes(ctx, db); err != nil {
		return err
	}

	return WithTransaction(ctx, db, transactional, func(ctx context.Context) error {
		if _, err := db.Collection(RunsCollection).InsertOne(ctx, report.Run); err != nil {
			return fmt.Errorf("unable to insert run: %w", err)
		}
		if len(report.Classes) == 0 {
			return nil
		}
		docs := make([]any, len(report.Classes))
		for i, c := range report.Classes {
			docs[i] = c
		}
		if _, err := db.Collection(ClassesCollection).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("unable to insert class results: %w", err)
		}
		return nil
	})
}
