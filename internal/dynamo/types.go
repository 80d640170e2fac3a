package dynamo

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeebo/xxh3"
)

// MaxSteps bounds a single run. It also rejects horizons where t+dt would stall.
const MaxSteps = 1 << 24

// Params is the immutable input record shared by value across integrator runs.
type Params struct {
	Gravity        float64 `yaml:"gravity" json:"gravity"`
	InitialSpeed   float64 `yaml:"initial_speed" json:"initial_speed"`
	LaunchAngleDeg float64 `yaml:"launch_angle_deg" json:"launch_angle_deg"`
	TimeStep       float64 `yaml:"time_step" json:"time_step"`
	MaxTime        float64 `yaml:"max_time" json:"max_time"`
	X0             float64 `yaml:"x0" json:"x0"`
	Y0             float64 `yaml:"y0" json:"y0"`
}

func DefaultParams() Params {
	return Params{
		Gravity:        9.81,
		InitialSpeed:   20,
		LaunchAngleDeg: 45,
		TimeStep:       0.001,
		MaxTime:        8,
	}
}

// Validate reports the first parameter outside its domain.
func (p Params) Validate() error {
	if err := positive("gravity", p.Gravity); err != nil {
		return err
	}
	if err := positive("initial_speed", p.InitialSpeed); err != nil {
		return err
	}
	if err := finite("launch_angle_deg", p.LaunchAngleDeg); err != nil {
		return err
	}
	if err := finite("x0", p.X0); err != nil {
		return err
	}
	if err := finite("y0", p.Y0); err != nil {
		return err
	}
	return checkStepping(p.TimeStep, p.MaxTime)
}

// Velocity decomposes speed and angle into horizontal and vertical components.
func (p Params) Velocity() mgl64.Vec2 {
	rad := p.LaunchAngleDeg * math.Pi / 180
	return mgl64.Vec2{p.InitialSpeed * math.Cos(rad), p.InitialSpeed * math.Sin(rad)}
}

// Launch returns the initial state at t=0. Every integrator gets its own copy.
func (p Params) Launch() State {
	return State{
		Pos: mgl64.Vec2{p.X0, p.Y0},
		Vel: p.Velocity(),
	}
}

// State of the point mass. Copied by value between steps.
type State struct {
	Time float64
	Pos  mgl64.Vec2
	Vel  mgl64.Vec2
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.Time, s.Pos[0], s.Pos[1], s.Vel[0], s.Vel[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Stepper advances a state by one fixed step under constant downward gravity g.
type Stepper interface {
	Name() string
	Step(s State, g, dt float64) State
}

// Termination records which loop guard ended a run.
type Termination int

const (
	TerminatedGround Termination = iota
	TerminatedMaxTime
)

func (t Termination) String() string {
	switch t {
	case TerminatedGround:
		return "ground"
	case TerminatedMaxTime:
		return "max_time"
	default:
		return fmt.Sprintf("termination(%d)", int(t))
	}
}

func (t Termination) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Sample is one (t, x, y) row of a trajectory.
type Sample struct {
	T, X, Y float64
}

// Trajectory holds index-aligned samples. It is not modified after Simulate returns.
type Trajectory struct {
	Method      string      `json:"method"`
	Times       []float64   `json:"times"`
	Xs          []float64   `json:"xs"`
	Ys          []float64   `json:"ys"`
	Termination Termination `json:"termination"`
}

func newTrajectory(method string, capacity int) *Trajectory {
	return &Trajectory{
		Method: method,
		Times:  make([]float64, 0, capacity),
		Xs:     make([]float64, 0, capacity),
		Ys:     make([]float64, 0, capacity),
	}
}

func (tr *Trajectory) append(s State) {
	tr.Times = append(tr.Times, s.Time)
	tr.Xs = append(tr.Xs, s.Pos.X())
	tr.Ys = append(tr.Ys, s.Pos.Y())
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) At(i int) Sample {
	return Sample{T: tr.Times[i], X: tr.Xs[i], Y: tr.Ys[i]}
}

func (tr *Trajectory) First() Sample { return tr.At(0) }
func (tr *Trajectory) Last() Sample  { return tr.At(tr.Len() - 1) }

// Steps is the number of integration steps taken.
func (tr *Trajectory) Steps() int { return tr.Len() - 1 }

// Landed reports whether the run ended by crossing the ground.
func (tr *Trajectory) Landed() bool { return tr.Termination == TerminatedGround }

// Points returns the (x, y) path for renderers.
func (tr *Trajectory) Points() []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, tr.Len())
	for i := range pts {
		pts[i] = mgl64.Vec2{tr.Xs[i], tr.Ys[i]}
	}
	return pts
}

// Fingerprint hashes the raw float bits of every sample. Equal fingerprints mean
// bit-identical trajectories in practice.
func (tr *Trajectory) Fingerprint() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 24)
	for i := range tr.Times {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(tr.Times[i]))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(tr.Xs[i]))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(tr.Ys[i]))
		h.Write(buf)
	}
	return h.Sum64()
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Field: field, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ParamError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkStepping(dt, maxTime float64) error {
	if err := positive("time_step", dt); err != nil {
		return err
	}
	if err := positive("max_time", maxTime); err != nil {
		return err
	}
	if maxTime/dt > MaxSteps {
		return &ParamError{Field: "time_step", Value: dt, Reason: fmt.Sprintf("needs more than %d steps to reach max_time=%g", MaxSteps, maxTime)}
	}
	return nil
}
