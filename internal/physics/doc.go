// Package physics provides the closed-form projectile model used as the
// reference for integration error.
//
// Without drag the equations of motion are solvable exactly:
//
//	x(t) = x0 + vx*t
//	y(t) = y0 + vy*t - g*t²/2
//
// [Projectile] evaluates these along with the derived quantities (range, peak
// height, time of flight) that the comparison reports against.
//
//	ref := physics.NewProjectile(params)
//	fmt.Println(ref.Range(), ref.PeakHeight())
package physics
