package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ballistic/internal/automation"
	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
)

// Objective scores a comparison. GridSearch minimizes it.
type Objective func(cmp *experiment.Comparison) float64

// ExactRange scores by the negated closed-form range, so the search finds the farthest launch.
func ExactRange(cmp *experiment.Comparison) float64 {
	return -cmp.Reference.Range
}

// RangeError scores by the range error of one method.
func RangeError(method string) Objective {
	return func(cmp *experiment.Comparison) float64 {
		if r := cmp.Run(method); r != nil {
			return r.RangeError
		}
		return math.Inf(1)
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
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

// Search runs methods at every point of the grid on top of base and returns
// the point with the lowest objective. Points with invalid parameters are
// skipped. Any other failure, such as an unknown method, aborts the search.
func (g *GridSearch) Search(
	ctx context.Context,
	base dynamo.Params,
	methods []string,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if err := automation.SetParam(&dynamo.Params{}, name, 0); err != nil {
			return nil, 0, fmt.Errorf("grid search: %w", err)
		}
	}

	registry := experiment.NewRegistry()
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(current map[string]float64) error {
		p := base
		for k, v := range current {
			if err := automation.SetParam(&p, k, v); err != nil {
				return fmt.Errorf("grid search: %w", err)
			}
		}
		cmp, err := experiment.New(experiment.Config{Params: p, Methods: methods}, registry, nil).Run(ctx)
		if errors.Is(err, dynamo.ErrInvalidParameter) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("grid search: %w", err)
		}

		val := objective(cmp)
		if val < best {
			best = val
			bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("grid search: no valid grid point")
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64) error,
) error {
	if depth == len(g.paramNames) {
		return visit(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}
