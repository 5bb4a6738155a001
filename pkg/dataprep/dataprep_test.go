package dataprep_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englhardt/des-evaluation/pkg/dataprep"
)

func TestOutlierLabel(t *testing.T) {
	got := dataprep.OutlierLabel([]string{"yes", "no", "yes", "", "'yes'", "YES"})
	require.Equal(t, []string{"outlier", "inlier", "outlier", "inlier", "inlier", "inlier"}, got)
}

func TestLabelEncode(t *testing.T) {
	codes, mapping := dataprep.LabelEncode([]string{"outlier", "inlier", "outlier"})
	require.Equal(t, []int{0, 1, 0}, codes)
	require.Equal(t, map[string]int{"outlier": 0, "inlier": 1}, mapping)
}

func TestSelectKBest(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		k      int
		want   []int
	}{
		{"top two in column order", []float64{0.1, 0.9, 0.5, 0.2}, 2, []int{1, 2}},
		{"k larger than features", []float64{0.3, 0.1}, 5, []int{0, 1}},
		{"ties favour later columns", []float64{0.5, 0.5, 0.5, 0.1}, 2, []int{1, 2}},
		{"zero k", []float64{0.5, 0.2}, 0, []int{}},
		{"negative k", []float64{0.5}, -1, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, dataprep.SelectKBest(tc.scores, tc.k))
		})
	}
}

// labeledFrame builds a table where "signal" separates the classes and the
// other columns carry no class information.
func labeledFrame(n int) dataframe.DataFrame {
	signal := make([]float64, n)
	ramp := make([]float64, n)
	flat := make([]float64, n)
	labels := make([]string, n)
	for i := range n {
		labels[i] = dataprep.Inlier
		if i%2 == 0 {
			labels[i] = dataprep.Outlier
			signal[i] = 10
		}
		signal[i] += float64(i) * 0.01
		ramp[i] = float64(i)
		flat[i] = 1
	}
	return dataframe.New(
		series.New(ramp, series.Float, "ramp"),
		series.New(signal, series.Float, "signal"),
		series.New(flat, series.Float, "flat"),
		series.New(labels, series.String, dataprep.LabelColumn),
	)
}

func TestFeatureSelector_Apply(t *testing.T) {
	df := labeledFrame(30)

	out, err := dataprep.FeatureSelector{K: 1, Neighbors: 3, Seed: 0}.Apply(df)
	require.NoError(t, err)
	require.Equal(t, []string{"signal", dataprep.LabelColumn}, out.Names())
	require.Equal(t, df.Nrow(), out.Nrow())
	require.Equal(t, df.Col(dataprep.LabelColumn).Records(), out.Col(dataprep.LabelColumn).Records())

	all, err := dataprep.FeatureSelector{K: 10, Neighbors: 3}.Apply(df)
	require.NoError(t, err)
	require.Equal(t, df.Names(), all.Names())
}

func TestFeatureSelector_KeepsRelativeOrder(t *testing.T) {
	df := labeledFrame(30)

	names, scores, err := dataprep.FeatureSelector{Neighbors: 3}.Score(df)
	require.NoError(t, err)
	require.Equal(t, []string{"ramp", "signal", "flat"}, names)
	require.Len(t, scores, 3)

	out, err := dataprep.FeatureSelector{K: 2, Neighbors: 3}.Apply(df)
	require.NoError(t, err)
	require.Len(t, out.Names(), 3)
	require.Equal(t, dataprep.LabelColumn, out.Names()[2])
	require.Contains(t, out.Names(), "signal")
}

func TestFeatureSelector_Errors(t *testing.T) {
	sel := dataprep.FeatureSelector{K: 5, Neighbors: 3}

	noLabel := dataframe.New(series.New([]float64{1, 2}, series.Float, "a"))
	_, err := sel.Apply(noLabel)
	require.True(t, errors.Is(err, dataprep.ErrNoLabel))

	onlyLabel := dataframe.New(series.New([]string{"inlier", "outlier"}, series.String, dataprep.LabelColumn))
	_, err = sel.Apply(onlyLabel)
	require.True(t, errors.Is(err, dataprep.ErrNoFeatures))

	text := dataframe.New(
		series.New([]string{"x", "y"}, series.String, "a"),
		series.New([]string{"inlier", "outlier"}, series.String, dataprep.LabelColumn),
	)
	_, err = sel.Apply(text)
	require.True(t, errors.Is(err, dataprep.ErrNonNumericFeature))

	missing := dataframe.New(
		series.New([]float64{1, math.NaN()}, series.Float, "a"),
		series.New([]string{"inlier", "outlier"}, series.String, dataprep.LabelColumn),
	)
	_, err = sel.Apply(missing)
	require.True(t, errors.Is(err, dataprep.ErrMissingValue))
}

func TestAddNoise(t *testing.T) {
	a := [][]float64{{1, 2, 3}, {4, 5, 6}}
	b := [][]float64{{1, 2, 3}, {4, 5, 6}}

	dataprep.AddNoise(a, 0.01, 0)
	dataprep.AddNoise(b, 0.01, 0)
	require.Equal(t, a, b, "same seed gives the same noise")

	orig := [][]float64{{1, 2, 3}, {4, 5, 6}}
	for j := range a {
		for i := range a[j] {
			assert.NotEqual(t, orig[j][i], a[j][i])
			assert.InDelta(t, orig[j][i], a[j][i], 0.1)
		}
	}

	c := [][]float64{{1, 2, 3}, {4, 5, 6}}
	dataprep.AddNoise(c, 0.01, 1)
	require.NotEqual(t, a, c)

	dataprep.AddNoise(nil, 0.01, 0)
}

func TestNoiseInjector_Apply(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3}, series.Float, "a"),
		series.New([]float64{4, 5, 6}, series.Float, "b"),
		series.New([]string{"outlier", "inlier", "outlier"}, series.String, dataprep.LabelColumn),
	)

	out, err := dataprep.NoiseInjector{Scale: 0.01, Seed: 0}.Apply(df)
	require.NoError(t, err)
	require.Equal(t, df.Names(), out.Names())
	require.Equal(t, []string{"outlier", "inlier", "outlier"}, out.Col(dataprep.LabelColumn).Records())

	for _, name := range []string{"a", "b"} {
		before, after := df.Col(name).Float(), out.Col(name).Float()
		for i := range before {
			assert.NotEqual(t, before[i], after[i])
			assert.InDelta(t, before[i], after[i], 0.1)
		}
	}

	again, err := dataprep.NoiseInjector{Scale: 0.01, Seed: 0}.Apply(df)
	require.NoError(t, err)
	require.Equal(t, out.Records(), again.Records())
}

// normalisedFrame mimics a DAMI table: 8 columns in [0,1], 10% outliers, and
// only att0 and att1 shifted for the outliers.
func normalisedFrame(rows int) dataframe.DataFrame {
	rng := rand.New(rand.NewPCG(3, 3))
	cols := make([][]float64, 8)
	for j := range cols {
		cols[j] = make([]float64, rows)
	}
	labels := make([]string, rows)
	for i := range rows {
		labels[i] = dataprep.Inlier
		if i%10 == 0 {
			labels[i] = dataprep.Outlier
		}
		for j := range cols {
			v := rng.Float64()
			if j < 2 {
				if labels[i] == dataprep.Outlier {
					v = 0.5 + 0.5*v
				} else {
					v = 0.7 * v
				}
			}
			cols[j][i] = v
		}
	}

	frame := make([]series.Series, 0, len(cols)+1)
	for j, col := range cols {
		frame = append(frame, series.New(col, series.Float, fmt.Sprintf("att%d", j)))
	}
	frame = append(frame, series.New(labels, series.String, dataprep.LabelColumn))
	return dataframe.New(frame...)
}

func TestFeatureSelector_KeepsWeaklyInformativeColumns(t *testing.T) {
	df := normalisedFrame(300)
	sel := dataprep.FeatureSelector{K: 5, Neighbors: 3, Seed: 0}

	_, scores, err := sel.Score(df)
	require.NoError(t, err)
	nonZero := 0
	for _, s := range scores {
		if s > 0 {
			nonZero++
		}
	}
	require.NotZero(t, nonZero, "scores %v", scores)

	out, err := sel.Apply(df)
	require.NoError(t, err)
	names := out.Names()
	require.Len(t, names, 6)
	require.Equal(t, dataprep.LabelColumn, names[5])
	require.Contains(t, names, "att0")
	require.Contains(t, names, "att1")
	require.NotEqual(t, []string{"att3", "att4", "att5", "att6", "att7", dataprep.LabelColumn}, names,
		"selection must follow the scores, not the column order")
}
