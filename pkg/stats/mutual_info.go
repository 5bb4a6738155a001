package stats

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// jitterScale is the relative amplitude of the noise that breaks ties
// between identical feature values before the neighbour search.
const jitterScale = 1e-10

var ErrLengthMismatch = errors.New("stats: feature and label lengths differ")

// MutualInfoClassif estimates the mutual information between every feature
// column and a discrete target with the kNN estimator of Ross (2014).
// cols is column-major, y holds one class code per row.
//
// Each column is scaled to unit variance (no centering) and jittered by a
// tiny gaussian drawn from a source seeded with seed, row by row across all
// columns, so equal seeds give equal scores.
func MutualInfoClassif(cols [][]float64, y []int, neighbors int, seed uint64) ([]float64, error) {
	if neighbors < 1 {
		return nil, errors.Errorf("stats: neighbors must be positive, got %d", neighbors)
	}
	for j, col := range cols {
		if len(col) != len(y) {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %d has %d rows, labels %d", j, len(col), len(y))
		}
	}

	scaled := NewScaler(false).FitTransform(cols)
	jitter(scaled, seed)

	scores := make([]float64, len(scaled))
	for j, col := range scaled {
		scores[j] = miContinuousDiscrete(col, y, neighbors)
	}
	return scores, nil
}

func jitter(cols [][]float64, seed uint64) {
	if len(cols) == 0 {
		return
	}
	amp := make([]float64, len(cols))
	for j, col := range cols {
		amp[j] = jitterScale * math.Max(1, MeanAbs(col))
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed)}
	for i := range len(cols[0]) {
		for j := range cols {
			cols[j][i] += amp[j] * normal.Rand()
		}
	}
}

// miContinuousDiscrete is the estimate for one continuous column c against
// class codes d. Points whose class occurs once are ignored.
func miContinuousDiscrete(c []float64, d []int, k int) float64 {
	n := len(c)
	groups := make(map[int][]int)
	for i, label := range d {
		groups[label] = append(groups[label], i)
	}

	radius := make([]float64, n)
	kAll := make([]int, n)
	counts := make([]int, n)
	for _, idx := range groups {
		count := len(idx)
		for _, i := range idx {
			counts[i] = count
		}
		if count < 2 {
			continue
		}
		kk := min(k, count-1)
		vals := make([]float64, count)
		for p, i := range idx {
			vals[p] = c[i]
		}
		dists := kthNeighborDistances(vals, kk)
		for p, i := range idx {
			// strictly inside the k-th neighbour distance
			radius[i] = math.Nextafter(dists[p], 0)
			kAll[i] = kk
		}
	}

	var kept []int
	for i := range n {
		if counts[i] > 1 {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return 0
	}

	sorted := make([]float64, len(kept))
	for p, i := range kept {
		sorted[p] = c[i]
	}
	sort.Float64s(sorted)

	var sumK, sumLabel, sumM float64
	for _, i := range kept {
		// compare distances; shifting c[i] by the radius rounds back onto
		// the k-th neighbour
		lo := sort.Search(len(sorted), func(p int) bool { return c[i]-sorted[p] <= radius[i] })
		hi := sort.Search(len(sorted), func(p int) bool { return sorted[p]-c[i] > radius[i] })
		m := max(hi-lo, 1)

		sumK += mathext.Digamma(float64(kAll[i]))
		sumLabel += mathext.Digamma(float64(counts[i]))
		sumM += mathext.Digamma(float64(m))
	}

	nk := float64(len(kept))
	mi := mathext.Digamma(nk) + sumK/nk - sumLabel/nk - sumM/nk
	return math.Max(0, mi)
}

// kthNeighborDistances returns, for every value, the distance to its k-th
// nearest other value. Requires k < len(vals).
func kthNeighborDistances(vals []float64, k int) []float64 {
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })

	out := make([]float64, len(vals))
	for p, i := range order {
		l, r := p-1, p+1
		var dist float64
		for range k {
			dl, dr := math.Inf(1), math.Inf(1)
			if l >= 0 {
				dl = vals[i] - vals[order[l]]
			}
			if r < len(order) {
				dr = vals[order[r]] - vals[i]
			}
			if dl <= dr {
				dist = dl
				l--
			} else {
				dist = dr
				r++
			}
		}
		out[i] = dist
	}
	return out
}
