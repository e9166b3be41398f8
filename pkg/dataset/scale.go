package dataset

import "math"

// Scaler rescales each feature to [0, 1] using the min and max seen at fit
// time. Values outside that range are clamped.
type Scaler struct {
	Min []float64
	Max []float64
}

func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	s := &Scaler{
		Min: append([]float64(nil), rows[0]...),
		Max: append([]float64(nil), rows[0]...),
	}
	for _, row := range rows[1:] {
		for j, v := range row {
			s.Min[j] = math.Min(s.Min[j], v)
			s.Max[j] = math.Max(s.Max[j], v)
		}
	}
	return s
}

func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		min, max := s.Min[j], s.Max[j]
		if max > min {
			out[j] = math.Max(0, math.Min(1, (v-min)/(max-min)))
		} else {
			out[j] = 0.5 // Default to middle if min==max
		}
	}
	return out
}

func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
