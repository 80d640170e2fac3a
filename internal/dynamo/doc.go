// Package dynamo provides the core primitives for fixed-step projectile simulation.
//
// The package defines the types shared by every integrator:
//
//   - [Params]: immutable launch and stepping parameters
//   - [State]: time, position and velocity of the point mass
//   - [Stepper]: one fixed step of a numerical scheme
//   - [Trajectory]: time-stamped samples produced by one run
//   - [Simulate]: the loop that drives a [Stepper] to termination
//
// # Example
//
//	p := dynamo.DefaultParams()
//	traj, err := dynamo.Simulate(integrators.NewRK4(), p.Gravity, p.Launch(), p.TimeStep, p.MaxTime)
//
// # Thread Safety
//
// Every function in this package is pure. Trajectories are never shared between runs,
// so independent simulations may execute concurrently without locking.
package dynamo
