package stats

import "math"

// zeroScale is the threshold below which a column is treated as constant.
const zeroScale = 10 * 2.220446049250313e-16

// Scaler scales each column to unit variance, optionally centering it first.
// Columns are passed column-major: cols[j] holds every value of feature j.
type Scaler struct {
	WithMean bool
	Mean     []float64
	Std      []float64
	fit      bool
}

func NewScaler(withMean bool) *Scaler { return &Scaler{WithMean: withMean} }

// Fit records the per-column mean and standard deviation. Constant columns get
// a scale of 1 so they pass through unchanged.
func (s *Scaler) Fit(cols [][]float64) {
	s.Mean = make([]float64, len(cols))
	s.Std = make([]float64, len(cols))
	for j, col := range cols {
		s.Mean[j] = Mean(col)
		s.Std[j] = Std(col)
		if s.Std[j] < zeroScale || math.IsNaN(s.Std[j]) {
			s.Std[j] = 1
		}
	}
	s.fit = true
}

// Transform returns scaled copies of cols. An unfitted scaler returns cols as is.
func (s *Scaler) Transform(cols [][]float64) [][]float64 {
	if !s.fit {
		return cols
	}
	out := make([][]float64, len(cols))
	for j, col := range cols {
		scaled := make([]float64, len(col))
		for i, v := range col {
			if s.WithMean {
				v -= s.Mean[j]
			}
			scaled[i] = v / s.Std[j]
		}
		out[j] = scaled
	}
	return out
}

func (s *Scaler) FitTransform(cols [][]float64) [][]float64 {
	s.Fit(cols)
	return s.Transform(cols)
}
