package model

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LossHistory holds one loss value per training step, in step order.
type LossHistory []float64

func (h LossHistory) Final() float64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1]
}

type LossWindow struct {
	Start  int
	End    int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Windows summarises consecutive blocks of size steps. The last block may be
// shorter. Start and End are 1-based and inclusive.
func (h LossHistory) Windows(size int) []LossWindow {
	if size <= 0 || len(h) == 0 {
		return nil
	}

	out := make([]LossWindow, 0, (len(h)+size-1)/size)
	for start := 0; start < len(h); start += size {
		end := min(start+size, len(h))
		values := h[start:end]
		window := LossWindow{
			Start: start + 1,
			End:   end,
			Mean:  stat.Mean(values, nil),
			Min:   floats.Min(values),
			Max:   floats.Max(values),
		}
		if len(values) > 1 {
			window.StdDev = stat.StdDev(values, nil)
		}
		out = append(out, window)
	}
	return out
}
