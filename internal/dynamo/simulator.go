package dynamo

import "fmt"

// Simulate drives step from x0 until the mass goes below ground or the most
// recently recorded time reaches maxTime.
//
// The guard is evaluated against the last appended sample, so the final sample
// may lie below y=0. It is kept as-is; callers that need the crossing point
// interpolate it themselves.
func Simulate(step Stepper, g float64, x0 State, dt, maxTime float64) (*Trajectory, error) {
	if err := validateRun(g, x0, dt, maxTime); err != nil {
		return nil, fmt.Errorf("%s: %w", step.Name(), err)
	}

	traj := newTrajectory(step.Name(), int(maxTime/dt)+2)

	s := x0
	s.Time = 0
	traj.append(s)

	for s.Pos.Y() >= 0 && s.Time < maxTime {
		s = step.Step(s, g, dt)
		traj.append(s)
	}

	if s.Pos.Y() < 0 {
		traj.Termination = TerminatedGround
	} else {
		traj.Termination = TerminatedMaxTime
	}
	return traj, nil
}

func validateRun(g float64, x0 State, dt, maxTime float64) error {
	if err := positive("gravity", g); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"x0", x0.Pos.X()},
		{"y0", x0.Pos.Y()},
		{"vx0", x0.Vel.X()},
		{"vy0", x0.Vel.Y()},
	} {
		if err := finite(f.name, f.v); err != nil {
			return err
		}
	}
	return checkStepping(dt, maxTime)
}
