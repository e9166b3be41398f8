package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// splitStream keeps the split permutation independent of any other
// generator seeded with the same value.
const splitStream uint64 = 0x9e3779b97f4a7c15

type InvalidFractionError struct {
	Fraction float64
	Samples  int
}

func (e *InvalidFractionError) Error() string {
	if e.Fraction > 0 && e.Fraction < 1 {
		return fmt.Sprintf("test fraction %v leaves an empty split of %d samples", e.Fraction, e.Samples)
	}
	return fmt.Sprintf("test fraction %v must be in (0, 1)", e.Fraction)
}

// Partition holds disjoint train and test row indices covering every sample
// exactly once.
type Partition struct {
	Train []int
	Test  []int
}

// Split permutes all row indices with a generator seeded from seed and puts
// the first round(n*testFraction) of them in the test set. There is no
// stratification.
func Split(features [][]float64, labels []string, testFraction float64, seed uint64) (Partition, error) {
	if err := validate(features, labels); err != nil {
		return Partition{}, err
	}

	n := len(features)
	if math.IsNaN(testFraction) || testFraction <= 0 || testFraction >= 1 {
		return Partition{}, &InvalidFractionError{Fraction: testFraction, Samples: n}
	}
	testSize := int(math.Round(float64(n) * testFraction))
	if testSize == 0 || testSize == n {
		return Partition{}, &InvalidFractionError{Fraction: testFraction, Samples: n}
	}

	rng := rand.New(rand.NewPCG(seed, splitStream))
	indices := rng.Perm(n)

	return Partition{
		Train: indices[testSize:],
		Test:  indices[:testSize],
	}, nil
}

func (d *Dataset) Split(testFraction float64, seed uint64) (Partition, error) {
	return Split(d.Features, d.Labels, testFraction, seed)
}
