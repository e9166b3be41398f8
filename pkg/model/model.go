package model

import (
	"fmt"
	"math/rand/v2"

	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/labels"
	"github.com/grexie/classifier/pkg/nn"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// initStream separates weight initialisation from the split permutation
// when both are seeded with the same value.
const initStream uint64 = 0x2545f4914f6cdd1d

type Model struct {
	Params     ModelParams
	Vocabulary *labels.Vocabulary
	Network    *nn.DenseClassifier
	Partition  dataset.Partition
	Scaler     *dataset.Scaler
	History    LossHistory
	Evaluation *Evaluation
	Metrics    ModelMetrics
}

// NewModel fits the vocabulary on every label, splits the dataset, trains a
// fresh network on the training split and evaluates it once on the test
// split.
func NewModel(pw progress.Writer, ds *dataset.Dataset, params ModelParams) (*Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}

	vocab := labels.Fit(ds.Labels)

	partition, err := ds.Split(params.TestFraction, params.Seed)
	if err != nil {
		return nil, err
	}

	trainingFeatures, trainingLabels := ds.Select(partition.Train)
	testingFeatures, testingLabels := ds.Select(partition.Test)

	var scaler *dataset.Scaler
	if params.Normalize {
		scaler = dataset.FitScaler(trainingFeatures)
		trainingFeatures = scaler.TransformAll(trainingFeatures)
		testingFeatures = scaler.TransformAll(testingFeatures)
	}

	trainingTargets, err := labels.Encode(trainingLabels, vocab)
	if err != nil {
		return nil, err
	}
	testingTargets, err := labels.Encode(testingLabels, vocab)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(params.Seed, initStream))
	net, err := nn.NewDenseClassifier(ds.Width(), params.Hidden, vocab.Len(), rng)
	if err != nil {
		return nil, err
	}

	loss := nn.MSE{}
	history, err := Train(pw, net, loss, nn.NewSGD(params.LearnRate), dataset.Matrix(trainingFeatures), trainingTargets, params.Steps, params.LogEvery)
	if err != nil {
		return nil, fmt.Errorf("training error: %w", err)
	}

	if evaluation, err := Evaluate(net, loss, dataset.Matrix(testingFeatures), testingTargets, vocab); err != nil {
		return nil, fmt.Errorf("evaluation error: %w", err)
	} else {
		return &Model{
			Params:     params,
			Vocabulary: vocab,
			Network:    net,
			Partition:  partition,
			Scaler:     scaler,
			History:    history,
			Evaluation: evaluation,
			Metrics:    calculateMetrics(evaluation),
		}, nil
	}
}
