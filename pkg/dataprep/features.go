package dataprep

import (
	"math"
	"slices"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/englhardt/des-evaluation/pkg/stats"
)

var (
	ErrNoFeatures        = errors.New("dataprep: table has no feature columns")
	ErrNoLabel           = errors.New("dataprep: table has no label column")
	ErrNonNumericFeature = errors.New("dataprep: feature column is not numeric")
	ErrMissingValue      = errors.New("dataprep: feature column has missing values")
)

// FeatureSelector keeps the K features with the highest mutual information
// with the label.
type FeatureSelector struct {
	K         int
	Neighbors int
	Seed      uint64
}

func (s FeatureSelector) Name() string { return "feature-selection" }

// Apply returns the selected features in their original order followed by
// the label column.
func (s FeatureSelector) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names, scores, err := s.Score(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	keep := make([]string, 0, s.K+1)
	for _, j := range SelectKBest(scores, s.K) {
		keep = append(keep, names[j])
	}
	keep = append(keep, LabelColumn)

	out := df.Select(keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "select features")
	}
	return out, nil
}

// Score computes the mutual information of every feature column with the label.
func (s FeatureSelector) Score(df dataframe.DataFrame) ([]string, []float64, error) {
	if !slices.Contains(df.Names(), LabelColumn) {
		return nil, nil, ErrNoLabel
	}
	names, cols, err := FeatureColumns(df)
	if err != nil {
		return nil, nil, err
	}
	if len(names) == 0 {
		return nil, nil, ErrNoFeatures
	}

	y, _ := LabelEncode(df.Col(LabelColumn).Records())
	scores, err := stats.MutualInfoClassif(cols, y, s.Neighbors, s.Seed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mutual information")
	}
	return names, scores, nil
}

// FeatureColumns extracts every column except the label as float slices.
func FeatureColumns(df dataframe.DataFrame) ([]string, [][]float64, error) {
	var (
		names []string
		cols  [][]float64
	)
	for _, name := range df.Names() {
		if name == LabelColumn {
			continue
		}
		col := df.Col(name)
		if col.Type() != series.Float && col.Type() != series.Int {
			return nil, nil, errors.Wrapf(ErrNonNumericFeature, "column %q", name)
		}
		values := col.Float()
		for _, v := range values {
			if math.IsNaN(v) {
				return nil, nil, errors.Wrapf(ErrMissingValue, "column %q", name)
			}
		}
		names = append(names, name)
		cols = append(cols, values)
	}
	return names, cols, nil
}

// SelectKBest returns the ascending indices of the k highest scores. Scores are
// stably sorted ascending and the last k taken, so among equal scores at the
// cut the later column wins. k >= len(scores) keeps everything.
func SelectKBest(scores []float64, k int) []int {
	k = max(0, min(k, len(scores)))

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	chosen := make([]int, 0, k)
	chosen = append(chosen, order[len(order)-k:]...)
	sort.Ints(chosen)
	return chosen
}
