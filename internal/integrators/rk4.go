package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ballistic/internal/dynamo"
)

// RK4 is the classical fourth-order Runge-Kutta scheme for
// dvy/dt = -g, dy/dt = vy, dx/dt = vx.
//
// With constant acceleration every velocity stage equals -g, so only the
// position stages differ from Euler. vx is constant and advances x directly.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(s dynamo.State, g, dt float64) dynamo.State {
	vy := s.Vel.Y()

	k1vy, k1y := -g, vy
	k2vy, k2y := -g, vy+0.5*dt*k1vy
	k3vy, k3y := -g, vy+0.5*dt*k2vy
	k4vy, k4y := -g, vy+dt*k3vy

	dt6 := dt / 6.0
	return dynamo.State{
		Time: s.Time + dt,
		Pos: mgl64.Vec2{
			s.Pos.X() + s.Vel.X()*dt,
			s.Pos.Y() + dt6*(k1y+2*k2y+2*k3y+k4y),
		},
		Vel: mgl64.Vec2{
			s.Vel.X(),
			vy + dt6*(k1vy+2*k2vy+2*k3vy+k4vy),
		},
	}
}

// IntegrateRK4 runs the RK4 scheme from (x0, y0) with velocity (vx0, vy0).
func IntegrateRK4(g, vx0, vy0, x0, y0, dt, maxTime float64) (*dynamo.Trajectory, error) {
	return dynamo.Simulate(NewRK4(), g, initial(vx0, vy0, x0, y0), dt, maxTime)
}
