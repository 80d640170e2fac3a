package viz

import (
	"math"
	"sort"

	"github.com/san-kum/ballistic/internal/dynamo"
)

// abscissa picks the horizontal key for a set of trajectories: x when every
// trajectory moves strictly rightward, time otherwise (vertical or backward launches).
func abscissa(trs []*dynamo.Trajectory) (keys [][]float64, byX bool) {
	byX = true
	for _, tr := range trs {
		if !increasing(tr.Xs) {
			byX = false
			break
		}
	}
	keys = make([][]float64, len(trs))
	for i, tr := range trs {
		if byX {
			keys[i] = tr.Xs
		} else {
			keys[i] = tr.Times
		}
	}
	return keys, byX
}

func increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return len(xs) > 1
}

// grid spans the union of every key slice with n evenly spaced points.
func grid(keys [][]float64, n int) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, k := range keys {
		if len(k) == 0 {
			continue
		}
		lo = math.Min(lo, k[0])
		hi = math.Max(hi, k[len(k)-1])
	}
	if n < 2 || math.IsInf(lo, 0) || hi <= lo {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// resample interpolates ys (keyed by ascending keys) at each grid point.
// Points outside the key range are NaN so shorter runs stop early on the plot.
func resample(keys, ys, at []float64) []float64 {
	out := make([]float64, len(at))
	for i, x := range at {
		j := sort.SearchFloat64s(keys, x)
		switch {
		case len(keys) == 0 || j == len(keys):
			out[i] = math.NaN()
		case keys[j] == x:
			out[i] = ys[j]
		case j == 0:
			out[i] = math.NaN()
		default:
			frac := (x - keys[j-1]) / (keys[j] - keys[j-1])
			out[i] = ys[j-1] + frac*(ys[j]-ys[j-1])
		}
	}
	return out
}
