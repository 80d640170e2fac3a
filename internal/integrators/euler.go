package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ballistic/internal/dynamo"
)

// Euler is the semi-implicit (symplectic) Euler scheme: velocity is updated
// first and the updated velocity moves the position.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(s dynamo.State, g, dt float64) dynamo.State {
	vy := s.Vel.Y() - g*dt
	return dynamo.State{
		Time: s.Time + dt,
		Pos:  mgl64.Vec2{s.Pos.X() + s.Vel.X()*dt, s.Pos.Y() + vy*dt},
		Vel:  mgl64.Vec2{s.Vel.X(), vy},
	}
}

// IntegrateEuler runs the Euler scheme from (x0, y0) with velocity (vx0, vy0).
func IntegrateEuler(g, vx0, vy0, x0, y0, dt, maxTime float64) (*dynamo.Trajectory, error) {
	return dynamo.Simulate(NewEuler(), g, initial(vx0, vy0, x0, y0), dt, maxTime)
}

func initial(vx0, vy0, x0, y0 float64) dynamo.State {
	return dynamo.State{
		Pos: mgl64.Vec2{x0, y0},
		Vel: mgl64.Vec2{vx0, vy0},
	}
}
