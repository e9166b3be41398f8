package model

// ConfusionMatrix counts test samples by actual class (rows) and predicted
// class (columns). Labels follow the vocabulary's class order.
type ConfusionMatrix struct {
	Labels []string
	Counts [][]int
}

func NewConfusionMatrix(labels []string) *ConfusionMatrix {
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}
}

func (c *ConfusionMatrix) Add(actual, predicted int) {
	c.Counts[actual][predicted]++
}

func (c *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range c.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Correct is the trace of the matrix.
func (c *ConfusionMatrix) Correct() int {
	correct := 0
	for i := range c.Counts {
		correct += c.Counts[i][i]
	}
	return correct
}

func (c *ConfusionMatrix) RowSums() []int {
	sums := make([]int, len(c.Counts))
	for i, row := range c.Counts {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}

func (c *ConfusionMatrix) ColSums() []int {
	sums := make([]int, len(c.Counts))
	for _, row := range c.Counts {
		for j, v := range row {
			sums[j] += v
		}
	}
	return sums
}
