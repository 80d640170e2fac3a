package metrics

import "github.com/san-kum/ballistic/internal/dynamo"

// crossing tracks the first downward pass through y = 0 and linearly
// interpolates between the bracketing samples. Trajectories keep their raw
// below-ground sample; the interpolation only lives here.
type crossing struct {
	first, prev dynamo.Sample
	at          dynamo.Sample
	samples     int
	landed      bool
}

func (c *crossing) observe(s dynamo.Sample) {
	if c.samples == 0 {
		c.first = s
	} else if !c.landed && c.prev.Y >= 0 && s.Y < 0 {
		f := c.prev.Y / (c.prev.Y - s.Y)
		c.at = dynamo.Sample{
			T: c.prev.T + f*(s.T-c.prev.T),
			X: c.prev.X + f*(s.X-c.prev.X),
		}
		c.landed = true
	}
	c.prev = s
	c.samples++
}

// end is the interpolated ground crossing, or the last sample if the run
// stopped at max_time.
func (c *crossing) end() dynamo.Sample {
	if c.landed {
		return c.at
	}
	return c.prev
}

func (c *crossing) reset() { *c = crossing{} }

// Range is the horizontal distance from the first sample to the ground crossing.
type Range struct{ c crossing }

func NewRange() *Range { return &Range{} }

func (r *Range) Name() string            { return NameRange }
func (r *Range) Observe(s dynamo.Sample) { r.c.observe(s) }
func (r *Range) Reset()                  { r.c.reset() }

func (r *Range) Value() float64 {
	if r.c.samples == 0 {
		return 0
	}
	return r.c.end().X - r.c.first.X
}

// FlightTime is the interpolated time of the ground crossing.
type FlightTime struct{ c crossing }

func NewFlightTime() *FlightTime { return &FlightTime{} }

func (f *FlightTime) Name() string            { return NameFlightTime }
func (f *FlightTime) Observe(s dynamo.Sample) { f.c.observe(s) }
func (f *FlightTime) Reset()                  { f.c.reset() }

func (f *FlightTime) Value() float64 {
	if f.c.samples == 0 {
		return 0
	}
	return f.c.end().T - f.c.first.T
}
