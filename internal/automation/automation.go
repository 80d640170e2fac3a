package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
	"github.com/san-kum/ballistic/internal/logging"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of comparisons sharing a base parameter set.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Base        dynamo.Params  `yaml:"base"`
	Methods     []string       `yaml:"methods"`
	Cases       []ScenarioCase `yaml:"cases"`
}

// ScenarioCase overrides selected fields of the scenario base.
type ScenarioCase struct {
	Name     string             `yaml:"name"`
	Override map[string]float64 `yaml:"override"`
	Methods  []string           `yaml:"methods"`
}

// CaseResult pairs a case with its comparison.
type CaseResult struct {
	Case       string
	Comparison *experiment.Comparison
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML on top of the default parameters, so base fields
// left out of the file keep their defaults.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Base: dynamo.DefaultParams()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Cases) == 0 {
		return nil, fmt.Errorf("scenario %q has no cases", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every case in order. It stops at the first failing case
// and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]CaseResult, error) {
	if log == nil {
		log = logging.Discard()
	}
	results := make([]CaseResult, 0, len(scenario.Cases))

	for i, c := range scenario.Cases {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("case-%d", i+1)
		}
		log.Info("running case", "scenario", scenario.Name, "case", name, "index", i+1, "total", len(scenario.Cases))

		p := scenario.Base
		for k, v := range c.Override {
			if err := SetParam(&p, k, v); err != nil {
				return results, fmt.Errorf("case %s: %w", name, err)
			}
		}

		methods := c.Methods
		if len(methods) == 0 {
			methods = scenario.Methods
		}
		if len(methods) == 0 {
			methods = []string{"euler", "rk4"}
		}

		cmp, err := experiment.New(experiment.Config{Params: p, Methods: methods}, registry, log).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("case %s: %w", name, err)
		}
		results = append(results, CaseResult{Case: name, Comparison: cmp})
	}

	return results, nil
}

// SetParam assigns one named field of p.
func SetParam(p *dynamo.Params, name string, value float64) error {
	switch name {
	case "gravity":
		p.Gravity = value
	case "initial_speed", "speed":
		p.InitialSpeed = value
	case "launch_angle_deg", "angle":
		p.LaunchAngleDeg = value
	case "time_step", "dt":
		p.TimeStep = value
	case "max_time":
		p.MaxTime = value
	case "x0":
		p.X0 = value
	case "y0":
		p.Y0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// ParameterSweep varies one parameter linearly and compares methods at each value.
type ParameterSweep struct {
	Base      dynamo.Params
	Methods   []string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from one point of a parameter sweep
type SweepResult struct {
	ParamValue float64
	Comparison *experiment.Comparison
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, log *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if log == nil {
		log = logging.Discard()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		p := sweep.Base
		if err := SetParam(&p, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		cmp, err := experiment.New(experiment.Config{Params: p, Methods: sweep.Methods}, registry, log).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}
		results = append(results, SweepResult{ParamValue: paramVal, Comparison: cmp})

		log.Debug("sweep point", "param", sweep.ParamName, "value", paramVal, "index", i+1, "total", sweep.NumSteps)
	}

	return results, nil
}
