package integrators_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/integrators"
	"github.com/san-kum/ballistic/internal/metrics"
	"github.com/san-kum/ballistic/internal/physics"
)

func run(step dynamo.Stepper, p dynamo.Params) *dynamo.Trajectory {
	tr, err := dynamo.Simulate(step, p.Gravity, p.Launch(), p.TimeStep, p.MaxTime)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return tr
}

func both(p dynamo.Params) (euler, rk4 *dynamo.Trajectory) {
	return run(integrators.NewEuler(), p), run(integrators.NewRK4(), p)
}

var _ = Describe("projectile integrators", func() {
	var p dynamo.Params

	BeforeEach(func() {
		p = dynamo.DefaultParams()
	})

	Describe("reference launch (v=20 m/s, 45°, dt=1ms)", func() {
		var (
			euler, rk4 map[string]float64
			ref        *physics.Projectile
		)

		BeforeEach(func() {
			e, r := both(p)
			euler, rk4 = metrics.Evaluate(e), metrics.Evaluate(r)
			ref = physics.NewProjectile(p)
		})

		It("matches the closed-form range and peak within 1%", func() {
			Expect(ref.Range()).To(BeNumerically("~", 40.775, 1e-3))
			Expect(ref.PeakHeight()).To(BeNumerically("~", 10.194, 1e-3))

			for _, m := range []map[string]float64{euler, rk4} {
				Expect(metrics.RelativeError(m[metrics.NameRange], ref.Range())).To(BeNumerically("<", 0.01))
				Expect(metrics.RelativeError(m[metrics.NamePeakHeight], ref.PeakHeight())).To(BeNumerically("<", 0.01))
			}
		})

		It("puts RK4 at least as close as Euler", func() {
			Expect(metrics.RelativeError(rk4[metrics.NameRange], ref.Range())).
				To(BeNumerically("<=", metrics.RelativeError(euler[metrics.NameRange], ref.Range())))
			Expect(metrics.RelativeError(rk4[metrics.NamePeakHeight], ref.PeakHeight())).
				To(BeNumerically("<=", metrics.RelativeError(euler[metrics.NamePeakHeight], ref.PeakHeight())))
		})
	})

	Describe("shared stepping contract", func() {
		It("starts both trajectories at the launch point at t=0", func() {
			e, r := both(p)
			Expect(e.First()).To(Equal(dynamo.Sample{T: 0, X: 0, Y: 0}))
			Expect(r.First()).To(Equal(dynamo.Sample{T: 0, X: 0, Y: 0}))
		})

		It("keeps time, x and y index-aligned", func() {
			e, r := both(p)
			for _, tr := range []*dynamo.Trajectory{e, r} {
				Expect(tr.Xs).To(HaveLen(tr.Len()))
				Expect(tr.Ys).To(HaveLen(tr.Len()))
				Expect(tr.Steps()).To(Equal(tr.Len() - 1))
			}
		})

		It("lands Euler at most one step before RK4", func() {
			e, r := both(p)
			Expect(e.Landed()).To(BeTrue())
			Expect(r.Landed()).To(BeTrue())
			Expect(r.Len() - e.Len()).To(BeNumerically(">=", 0))
			Expect(r.Len() - e.Len()).To(BeNumerically("<=", 1))
		})

		It("produces equal sample counts when max_time cuts both runs", func() {
			p.MaxTime = 1
			e, r := both(p)
			Expect(e.Termination).To(Equal(dynamo.TerminatedMaxTime))
			Expect(r.Termination).To(Equal(dynamo.TerminatedMaxTime))
			Expect(e.Len()).To(Equal(r.Len()))
			Expect(e.Last().Y).To(BeNumerically(">=", 0))
			Expect(r.Last().Y).To(BeNumerically(">=", 0))
		})

		It("distinguishes ground impact from the max_time cutoff", func() {
			_, landed := both(p)
			Expect(landed.Last().Y).To(BeNumerically("<", 0))

			p.MaxTime = 0.5
			_, cut := both(p)
			Expect(cut.Last().Y).To(BeNumerically(">=", 0))
			Expect(cut.Landed()).To(BeFalse())
		})

		It("is deterministic", func() {
			e1, r1 := both(p)
			e2, r2 := both(p)
			Expect(e1).To(Equal(e2))
			Expect(r1).To(Equal(r2))
			Expect(e1.Fingerprint()).To(Equal(e2.Fingerprint()))
			Expect(r1.Fingerprint()).NotTo(Equal(e1.Fingerprint()))
		})

		DescribeTable("x never decreases when vx >= 0",
			func(angle, y0 float64) {
				p.LaunchAngleDeg = angle
				p.Y0 = y0
				p.TimeStep = 0.01
				e, r := both(p)
				for _, tr := range []*dynamo.Trajectory{e, r} {
					for i := 1; i < tr.Len(); i++ {
						Expect(tr.Xs[i]).To(BeNumerically(">=", tr.Xs[i-1]))
					}
				}
			},
			Entry("flat", 0.0, 2.0),
			Entry("low", 15.0, 0.0),
			Entry("classic", 45.0, 0.0),
			Entry("steep", 80.0, 0.0),
			Entry("vertical", 90.0, 0.0),
			Entry("downward from a ledge", -20.0, 10.0),
		)
	})

	DescribeTable("convergence toward the closed form",
		func(dt float64) {
			p.TimeStep = dt
			ref := physics.NewProjectile(p)
			e, r := both(p)
			em, rm := metrics.Evaluate(e), metrics.Evaluate(r)

			for _, name := range []string{metrics.NamePeakHeight, metrics.NameRange} {
				want := ref.PeakHeight()
				if name == metrics.NameRange {
					want = ref.Range()
				}
				Expect(metrics.RelativeError(rm[name], want)).
					To(BeNumerically("<=", metrics.RelativeError(em[name], want)), name)
			}
		},
		Entry("dt=0.1", 0.1),
		Entry("dt=0.05", 0.05),
		Entry("dt=0.01", 0.01),
		Entry("dt=0.005", 0.005),
		Entry("dt=0.001", 0.001),
	)

	It("shrinks Euler's peak error as dt shrinks", func() {
		ref := physics.NewProjectile(p)
		prev := 1e9
		for _, dt := range []float64{0.1, 0.01, 0.001} {
			p.TimeStep = dt
			e := run(integrators.NewEuler(), p)
			err := metrics.RelativeError(metrics.Evaluate(e)[metrics.NamePeakHeight], ref.PeakHeight())
			Expect(err).To(BeNumerically("<", prev))
			prev = err
		}
	})

	It("rejects invalid stepping before doing any work", func() {
		p.TimeStep = 0
		_, err := dynamo.Simulate(integrators.NewRK4(), p.Gravity, p.Launch(), p.TimeStep, p.MaxTime)
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
	})
})
