package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ballistic/internal/dynamo"
)

type Projectile struct {
	Gravity  float64
	Speed    float64
	AngleDeg float64
	X0       float64
	Y0       float64
}

func NewProjectile(p dynamo.Params) *Projectile {
	return &Projectile{
		Gravity:  p.Gravity,
		Speed:    p.InitialSpeed,
		AngleDeg: p.LaunchAngleDeg,
		X0:       p.X0,
		Y0:       p.Y0,
	}
}

func (p *Projectile) velocity() (vx, vy float64) {
	rad := p.AngleDeg * math.Pi / 180
	return p.Speed * math.Cos(rad), p.Speed * math.Sin(rad)
}

func (p *Projectile) PositionAt(t float64) mgl64.Vec2 {
	vx, vy := p.velocity()
	return mgl64.Vec2{p.X0 + vx*t, p.Y0 + vy*t - 0.5*p.Gravity*t*t}
}

func (p *Projectile) VelocityAt(t float64) mgl64.Vec2 {
	vx, vy := p.velocity()
	return mgl64.Vec2{vx, vy - p.Gravity*t}
}

// TimeOfFlight is the positive root of y(t) = 0. It returns NaN when the
// launch point is below ground.
func (p *Projectile) TimeOfFlight() float64 {
	if p.Y0 < 0 {
		return math.NaN()
	}
	_, vy := p.velocity()
	return (vy + math.Sqrt(vy*vy+2*p.Gravity*p.Y0)) / p.Gravity
}

// Range is the horizontal distance covered before returning to y = 0.
// For y0 = 0 it reduces to v²·sin(2θ)/g.
func (p *Projectile) Range() float64 {
	vx, _ := p.velocity()
	return vx * p.TimeOfFlight()
}

func (p *Projectile) PeakTime() float64 {
	_, vy := p.velocity()
	if vy <= 0 {
		return 0
	}
	return vy / p.Gravity
}

// PeakHeight is the apex of the trajectory. For y0 = 0 it is (v·sinθ)²/(2g).
func (p *Projectile) PeakHeight() float64 {
	_, vy := p.velocity()
	if vy <= 0 {
		return p.Y0
	}
	return p.Y0 + vy*vy/(2*p.Gravity)
}

// Energy is the specific mechanical energy (per unit mass) of a state.
func (p *Projectile) Energy(s dynamo.State) float64 {
	return 0.5*s.Vel.Dot(s.Vel) + p.Gravity*s.Pos.Y()
}
