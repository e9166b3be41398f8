package model

import "math"

func BoundHidden(v int) int {
	return int(math.Max(1, math.Min(1024, float64(v)))) // Default: 32
}

func BoundSteps(v int) int {
	return int(math.Max(1, math.Min(1_000_000, float64(v)))) // Default: 500
}

func BoundLearnRate(v float64) float64 {
	return math.Max(1e-6, math.Min(10, v)) // Default: 0.03
}

func BoundLogEvery(v int) int {
	return int(math.Max(0, float64(v))) // Default: 0 (off)
}
