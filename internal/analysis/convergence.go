package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
	"github.com/san-kum/ballistic/internal/metrics"
)

// errorFloor is the smallest absolute error that still carries a slope.
const errorFloor = 1e-10

type Point struct {
	Dt         float64 `json:"dt"`
	Method     string  `json:"method"`
	Samples    int     `json:"samples"`
	PeakError  float64 `json:"peak_error"`
	RangeError float64 `json:"range_error"`
}

type Report struct {
	Params    dynamo.Params        `json:"params"`
	Reference experiment.Reference `json:"reference"`
	Methods   []string             `json:"methods"`
	Points    []Point              `json:"points"`
	// Order is the observed order of the peak-height error per method.
	Order map[string]float64 `json:"order"`
}

// ByMethod returns the points for one method, coarsest step first.
func (r *Report) ByMethod(method string) []Point {
	var out []Point
	for _, p := range r.Points {
		if p.Method == method {
			out = append(out, p)
		}
	}
	return out
}

// Convergence runs methods (all registered ones when nil) at each step size.
func Convergence(ctx context.Context, base dynamo.Params, steps []float64, methods []string, registry *experiment.Registry) (*Report, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("convergence: no time steps given")
	}
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	if len(methods) == 0 {
		methods = registry.ListIntegrators()
	}

	dts := append([]float64(nil), steps...)
	sort.Sort(sort.Reverse(sort.Float64Slice(dts)))

	rep := &Report{
		Params:    base,
		Reference: experiment.NewReference(base),
		Methods:   methods,
		Order:     make(map[string]float64, len(methods)),
	}

	for _, dt := range dts {
		p := base
		p.TimeStep = dt
		cmp, err := experiment.New(experiment.Config{Params: p, Methods: methods}, registry, nil).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("dt=%g: %w", dt, err)
		}
		for _, run := range cmp.Runs {
			rep.Points = append(rep.Points, Point{
				Dt:         dt,
				Method:     run.Method,
				Samples:    run.Trajectory.Len(),
				PeakError:  math.Abs(run.Metrics[metrics.NamePeakHeight] - rep.Reference.PeakHeight),
				RangeError: math.Abs(run.Metrics[metrics.NameRange] - rep.Reference.Range),
			})
		}
	}

	for _, m := range methods {
		pts := rep.ByMethod(m)
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = p.Dt, p.PeakError
		}
		rep.Order[m] = ObservedOrder(xs, ys)
	}
	return rep, nil
}

// ObservedOrder fits log(err) = q·log(dt) + c and returns q. Pairs with an
// error below the rounding floor are skipped; fewer than two usable pairs
// yield NaN.
func ObservedOrder(dts, errs []float64) float64 {
	var lx, ly []float64
	for i := range dts {
		if i >= len(errs) || errs[i] < errorFloor || dts[i] <= 0 {
			continue
		}
		lx = append(lx, math.Log(dts[i]))
		ly = append(ly, math.Log(errs[i]))
	}
	n := float64(len(lx))
	if n < 2 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	for i := range lx {
		sx += lx[i]
		sy += ly[i]
		sxx += lx[i] * lx[i]
		sxy += lx[i] * ly[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}
