package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/logging"
	"github.com/san-kum/ballistic/internal/metrics"
	"github.com/san-kum/ballistic/internal/physics"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Params     dynamo.Params
	Methods    []string
	Sequential bool
}

// Reference holds the closed-form values every run is scored against.
type Reference struct {
	Range      float64 `json:"range"`
	PeakHeight float64 `json:"peak_height"`
	FlightTime float64 `json:"flight_time"`
}

type Run struct {
	Method     string             `json:"method"`
	Trajectory *dynamo.Trajectory `json:"trajectory"`
	Metrics    map[string]float64 `json:"metrics"`
	PeakError  float64            `json:"peak_error"`
	RangeError float64            `json:"range_error"`
	Elapsed    time.Duration      `json:"elapsed"`
}

type Comparison struct {
	Params    dynamo.Params `json:"params"`
	Reference Reference     `json:"reference"`
	Runs      []*Run        `json:"runs"`
}

// Run returns the result for method, or nil.
func (c *Comparison) Run(method string) *Run {
	for _, r := range c.Runs {
		if r.Method == method {
			return r
		}
	}
	return nil
}

func (c *Comparison) Trajectories() []*dynamo.Trajectory {
	out := make([]*dynamo.Trajectory, len(c.Runs))
	for i, r := range c.Runs {
		out[i] = r.Trajectory
	}
	return out
}

type Experiment struct {
	cfg      Config
	registry *Registry
	log      *slog.Logger
}

func New(cfg Config, registry *Registry, log *slog.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Experiment{cfg: cfg, registry: registry, log: log}
}

// Run validates the parameters once, then integrates every method from its own
// copy of the launch state. Methods run concurrently unless cfg.Sequential.
func (e *Experiment) Run(ctx context.Context) (*Comparison, error) {
	p := e.cfg.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(e.cfg.Methods) == 0 {
		return nil, fmt.Errorf("experiment: no methods selected")
	}

	steppers := make([]dynamo.Stepper, len(e.cfg.Methods))
	for i, name := range e.cfg.Methods {
		st, err := e.registry.GetIntegrator(name)
		if err != nil {
			return nil, err
		}
		steppers[i] = st
	}

	ref := NewReference(p)
	cmp := &Comparison{
		Params:    p,
		Reference: ref,
		Runs:      make([]*Run, len(steppers)),
	}

	var g errgroup.Group
	if e.cfg.Sequential {
		g.SetLimit(1)
	}
	for i, st := range steppers {
		i, st := i, st
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := simulate(st, p, ref)
			if err != nil {
				return err
			}
			cmp.Runs[i] = r
			e.log.Debug("integrated",
				"method", r.Method,
				"steps", r.Trajectory.Steps(),
				"termination", r.Trajectory.Termination.String(),
				"elapsed", r.Elapsed)
			e.log.Log(ctx, logging.LevelTrace, "fingerprint",
				"method", r.Method,
				"xxh3", fmt.Sprintf("%016x", r.Trajectory.Fingerprint()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cmp, nil
}

// Compare runs the named methods (euler and rk4 by default) on p.
func Compare(ctx context.Context, p dynamo.Params, methods ...string) (*Comparison, error) {
	if len(methods) == 0 {
		methods = []string{"euler", "rk4"}
	}
	return New(Config{Params: p, Methods: methods}, nil, nil).Run(ctx)
}

func NewReference(p dynamo.Params) Reference {
	proj := physics.NewProjectile(p)
	return Reference{
		Range:      proj.Range(),
		PeakHeight: proj.PeakHeight(),
		FlightTime: proj.TimeOfFlight(),
	}
}

func simulate(st dynamo.Stepper, p dynamo.Params, ref Reference) (*Run, error) {
	start := time.Now()
	tr, err := dynamo.Simulate(st, p.Gravity, p.Launch(), p.TimeStep, p.MaxTime)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	m := metrics.Evaluate(tr)
	return &Run{
		Method:     st.Name(),
		Trajectory: tr,
		Metrics:    m,
		PeakError:  metrics.RelativeError(m[metrics.NamePeakHeight], ref.PeakHeight),
		RangeError: metrics.RelativeError(m[metrics.NameRange], ref.Range),
		Elapsed:    elapsed,
	}, nil
}
