package dataprep

import (
	"math/rand/v2"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseInjector adds zero-mean gaussian noise to every feature cell. The label
// column is left untouched.
type NoiseInjector struct {
	Scale float64
	Seed  uint64
}

func (n NoiseInjector) Name() string { return "noise" }

func (n NoiseInjector) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names, cols, err := FeatureColumns(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	AddNoise(cols, n.Scale, n.Seed)

	out := df
	for j, name := range names {
		out = out.Mutate(series.New(cols[j], series.Float, name))
	}
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "replace noised columns")
	}
	return out, nil
}

// AddNoise perturbs cols in place with N(0, scale) draws. The source is seeded
// on every call and consumed row by row across the columns.
func AddNoise(cols [][]float64, scale float64, seed uint64) {
	if len(cols) == 0 {
		return
	}
	normal := distuv.Normal{Mu: 0, Sigma: scale, Src: rand.NewPCG(seed, seed)}
	for i := range len(cols[0]) {
		for j := range cols {
			cols[j][i] += normal.Rand()
		}
	}
}
