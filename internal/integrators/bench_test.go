package integrators

import (
	"testing"

	"github.com/san-kum/ballistic/internal/dynamo"
)

func benchState() dynamo.State {
	return dynamo.DefaultParams().Launch()
}

func BenchmarkEulerStep(b *testing.B) {
	integrator := NewEuler()
	x := benchState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(x, 9.81, 0.001)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	integrator := NewRK4()
	x := benchState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(x, 9.81, 0.001)
	}
}

func BenchmarkEulerTrajectory(b *testing.B) {
	p := dynamo.DefaultParams()
	v := p.Velocity()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := IntegrateEuler(p.Gravity, v.X(), v.Y(), 0, 0, p.TimeStep, p.MaxTime); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRK4Trajectory(b *testing.B) {
	p := dynamo.DefaultParams()
	v := p.Velocity()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := IntegrateRK4(p.Gravity, v.X(), v.Y(), 0, 0, p.TimeStep, p.MaxTime); err != nil {
			b.Fatal(err)
		}
	}
}
