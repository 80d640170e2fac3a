package metrics

import (
	"math"

	"github.com/san-kum/ballistic/internal/dynamo"
)

// Metric consumes trajectory samples in order and reduces them to one value.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

const (
	NamePeakHeight = "peak_height"
	NameRange      = "range"
	NameFlightTime = "flight_time"
)

func Default() []Metric {
	return []Metric{
		NewPeakHeight(),
		NewRange(),
		NewFlightTime(),
	}
}

// Evaluate resets each metric, replays every sample of tr and collects the values.
func Evaluate(tr *dynamo.Trajectory, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Default()
	}
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < tr.Len(); i++ {
		s := tr.At(i)
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// RelativeError is |got-want|/|want|, or the absolute error when want is zero.
func RelativeError(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
