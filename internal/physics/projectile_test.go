package physics

import (
	"math"
	"testing"

	"github.com/san-kum/ballistic/internal/dynamo"
)

func TestProjectileReferenceValues(t *testing.T) {
	p := NewProjectile(dynamo.DefaultParams())

	if got := p.Range(); math.Abs(got-40.7747) > 1e-3 {
		t.Errorf("range = %.6f, want ~40.7747", got)
	}
	if got := p.PeakHeight(); math.Abs(got-10.1937) > 1e-3 {
		t.Errorf("peak height = %.6f, want ~10.1937", got)
	}

	// v²·sin(2θ)/g
	want := 20.0 * 20.0 * math.Sin(2*math.Pi/4) / 9.81
	if math.Abs(p.Range()-want) > 1e-9 {
		t.Errorf("range = %.12f, closed form %.12f", p.Range(), want)
	}
}

func TestProjectileLandsAtTimeOfFlight(t *testing.T) {
	tests := []struct {
		name string
		y0   float64
	}{
		{"ground launch", 0},
		{"elevated launch", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dynamo.DefaultParams()
			params.Y0 = tt.y0
			p := NewProjectile(params)

			tf := p.TimeOfFlight()
			pos := p.PositionAt(tf)
			if math.Abs(pos.Y()) > 1e-9 {
				t.Errorf("y(t_f) = %e, want 0", pos.Y())
			}
			if math.Abs(pos.X()-p.Range()) > 1e-9 {
				t.Errorf("x(t_f) = %f, want range %f", pos.X(), p.Range())
			}
			apex := p.PositionAt(p.PeakTime())
			if math.Abs(apex.Y()-p.PeakHeight()) > 1e-9 {
				t.Errorf("y(peak) = %f, want %f", apex.Y(), p.PeakHeight())
			}
		})
	}
}

func TestProjectileDownwardLaunch(t *testing.T) {
	params := dynamo.DefaultParams()
	params.LaunchAngleDeg = -30
	params.Y0 = 10
	p := NewProjectile(params)

	if p.PeakTime() != 0 {
		t.Errorf("peak time = %f, want 0", p.PeakTime())
	}
	if p.PeakHeight() != 10 {
		t.Errorf("peak height = %f, want launch height", p.PeakHeight())
	}

	params.Y0 = -1
	if tf := NewProjectile(params).TimeOfFlight(); !math.IsNaN(tf) {
		t.Errorf("time of flight below ground = %f, want NaN", tf)
	}
}

func TestProjectileEnergyConserved(t *testing.T) {
	p := NewProjectile(dynamo.DefaultParams())

	e0 := p.Energy(dynamo.State{Pos: p.PositionAt(0), Vel: p.VelocityAt(0)})
	for _, tm := range []float64{0.5, 1.0, 2.0, 2.8} {
		e := p.Energy(dynamo.State{Time: tm, Pos: p.PositionAt(tm), Vel: p.VelocityAt(tm)})
		if math.Abs(e-e0) > 1e-9 {
			t.Errorf("energy at t=%.1f = %f, want %f", tm, e, e0)
		}
	}
}
