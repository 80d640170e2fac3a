package metrics

import (
	"math"

	"github.com/san-kum/ballistic/internal/dynamo"
)

// PeakHeight is the largest recorded y. No sub-step refinement is applied.
type PeakHeight struct {
	max     float64
	samples int
}

func NewPeakHeight() *PeakHeight {
	return &PeakHeight{max: math.Inf(-1)}
}

func (p *PeakHeight) Name() string { return NamePeakHeight }

func (p *PeakHeight) Observe(s dynamo.Sample) {
	p.max = math.Max(p.max, s.Y)
	p.samples++
}

func (p *PeakHeight) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.max
}

func (p *PeakHeight) Reset() {
	p.max = math.Inf(-1)
	p.samples = 0
}
