package dynamo

import (
	"errors"
	"math"
	"testing"
)

// constantVelocity moves without gravity so sample counts are easy to predict.
type constantVelocity struct{}

func (c *constantVelocity) Name() string { return "test" }

func (c *constantVelocity) Step(s State, g, dt float64) State {
	s.Pos = s.Pos.Add(s.Vel.Mul(dt))
	s.Time += dt
	return s
}

func TestSimulateStopsAtMaxTime(t *testing.T) {
	x0 := State{}
	x0.Vel[0], x0.Vel[1] = 1, 1

	traj, err := Simulate(&constantVelocity{}, 9.81, x0, 0.25, 1.0)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if traj.Len() != 5 {
		t.Errorf("expected 5 samples, got %d", traj.Len())
	}
	if traj.Termination != TerminatedMaxTime {
		t.Errorf("expected max_time termination, got %s", traj.Termination)
	}
	if traj.Method != "test" {
		t.Errorf("expected method name test, got %q", traj.Method)
	}
	if last := traj.Last(); last.T != 1.0 || last.X != 1.0 {
		t.Errorf("unexpected last sample %+v", last)
	}
}

func TestSimulateKeepsBelowGroundSample(t *testing.T) {
	x0 := State{}
	x0.Pos[1] = 1
	x0.Vel[1] = -0.75

	traj, err := Simulate(&constantVelocity{}, 9.81, x0, 1, 10)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	// y: 1, 0.25, -0.5
	if traj.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", traj.Len())
	}
	if traj.Last().Y != -0.5 {
		t.Errorf("expected last y -0.5, got %f", traj.Last().Y)
	}
	if !traj.Landed() {
		t.Errorf("expected ground termination, got %s", traj.Termination)
	}
}

func TestSimulateResetsInitialTime(t *testing.T) {
	x0 := State{Time: 42}
	x0.Pos[1] = 1

	traj, err := Simulate(&constantVelocity{}, 9.81, x0, 0.5, 1)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if traj.First().T != 0 {
		t.Errorf("first sample time = %f, want 0", traj.First().T)
	}
}

func TestSimulateInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		g       float64
		dt      float64
		maxTime float64
	}{
		{"zero dt", 9.81, 0, 1.0},
		{"negative dt", 9.81, -0.1, 1.0},
		{"zero duration", 9.81, 0.1, 0},
		{"negative duration", 9.81, 0.1, -1.0},
		{"inf duration", 9.81, 0.1, math.Inf(1)},
		{"negative gravity", -9.81, 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(&constantVelocity{}, tt.g, State{}, tt.dt, tt.maxTime)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Errorf("expected *ParamError in chain, got %T", err)
			}
		})
	}
}
