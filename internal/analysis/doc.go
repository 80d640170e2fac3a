// Package analysis measures how integration error scales with the time step.
//
// [Convergence] sweeps a list of step sizes, runs every method at each one and
// scores peak height and range against the closed-form projectile. The
// observed order of accuracy is the least-squares slope of log(error) against
// log(dt):
//
//	rep, _ := analysis.Convergence(ctx, params, []float64{0.1, 0.01, 0.001}, nil, nil)
//	fmt.Println(rep.Order["euler"]) // ≈ 1
//
// Errors at rounding level are excluded from the fit. A method that is exact at
// its sample points therefore reports NaN instead of a meaningless slope.
package analysis
