package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ballistic/internal/analysis"
	"github.com/san-kum/ballistic/internal/automation"
	"github.com/san-kum/ballistic/internal/config"
	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/experiment"
	"github.com/san-kum/ballistic/internal/export"
	"github.com/san-kum/ballistic/internal/logging"
	"github.com/san-kum/ballistic/internal/optim"
	"github.com/san-kum/ballistic/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Config sources
	configFile string
	preset     string
	// Launch parameters
	dt      float64
	maxTime float64
	speed   float64
	angle   float64
	gravity float64
	x0      float64
	y0      float64
	// Run selection
	methods    []string
	sequential bool
	logLevel   string
	// Output
	format       string
	exportFormat string
	out          string
	width        int
	height       int
	color        bool
	// Convergence and sweeps
	steps      []float64
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	// Grid search
	optParam  string
	optFrom   float64
	optTo     float64
	optN      int
	objective string

	logger = logging.Discard()
)

// main registers the ballistic commands and runs the root command, which
// defaults to compare. It exits with status 1 on any error.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ballistic",
		Short: "compare Euler and RK4 on drag-free projectile motion",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logLevel, os.Stderr)
		},
		RunE:         runCompare,
		SilenceUsage: true,
	}

	def := dynamo.DefaultParams()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&dt, "dt", def.TimeStep, "timestep (s)")
	pf.Float64Var(&maxTime, "max-time", def.MaxTime, "simulation horizon (s)")
	pf.Float64Var(&speed, "speed", def.InitialSpeed, "launch speed (m/s)")
	pf.Float64Var(&angle, "angle", def.LaunchAngleDeg, "launch angle above horizontal (deg)")
	pf.Float64Var(&gravity, "gravity", def.Gravity, "downward acceleration (m/s²)")
	pf.Float64Var(&x0, "x0", def.X0, "launch x (m)")
	pf.Float64Var(&y0, "y0", def.Y0, "launch height (m)")
	pf.StringSliceVar(&methods, "methods", config.DefaultMethods, "integration methods")
	pf.BoolVar(&sequential, "sequential", false, "run methods one after another")
	pf.StringVar(&logLevel, "log-level", "info", "log level (info, debug, trace)")

	addPlotFlags(rootCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integration methods against the exact solution",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addPlotFlags(compareCmd)

	runCmd := &cobra.Command{
		Use:   "run [method]",
		Short: "integrate with a single method",
		Args:  cobra.ExactArgs(1),
		RunE:  runSingle,
	}
	addPlotFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "render the trajectory overlay (ascii, png, html, svg)",
		Args:  cobra.NoArgs,
		RunE:  plotComparison,
	}
	addPlotFlags(plotCmd)
	plotCmd.Flags().StringVar(&format, "format", "", "output format: ascii, png, html, svg (default from config)")
	plotCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export trajectories as csv or json",
		Args:  cobra.NoArgs,
		RunE:  exportComparison,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, json")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "measure error against step size and the observed order",
		Args:  cobra.NoArgs,
		RunE:  runConvergence,
	}
	convergeCmd.Flags().Float64SliceVar(&steps, "steps", []float64{0.1, 0.05, 0.02, 0.01, 0.005, 0.002, 0.001}, "time steps to try")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and compare methods at each value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "angle", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 15, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 75, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search one parameter for the longest range or the smallest method error",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringVar(&optParam, "param", "angle", "parameter to search")
	optimizeCmd.Flags().Float64Var(&optFrom, "from", 5, "first value")
	optimizeCmd.Flags().Float64Var(&optTo, "to", 85, "last value")
	optimizeCmd.Flags().IntVar(&optN, "n", 81, "number of values")
	optimizeCmd.Flags().StringVar(&objective, "objective", "range", "range, or a method name to minimize its range error")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every case of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tANGLE\tGRAVITY\tDT\tMAX_TIME\tY0")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name).Params
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
					name, p.InitialSpeed, p.LaunchAngleDeg, p.Gravity, p.TimeStep, p.MaxTime, p.Y0)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integration methods",
		Args:  cobra.NoArgs,
		RunE:  benchMethods,
	}

	rootCmd.AddCommand(compareCmd, runCmd, plotCmd, exportCmd, convergeCmd, sweepCmd, optimizeCmd, scenarioCmd, presetsCmd, benchCmd)
	return rootCmd
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "plot width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "plot height")
	cmd.Flags().BoolVar(&color, "color", false, "colored terminal plot")
}

// resolveConfig layers the sources in increasing precedence:
// defaults, --preset, --config, then individually set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, err
		}
		if cfg, err = config.Overlay(cfg, data); err != nil {
			return nil, fmt.Errorf("%s: %w", configFile, err)
		}
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag string
		dst  *float64
		val  float64
	}{
		{"dt", &cfg.Params.TimeStep, dt},
		{"max-time", &cfg.Params.MaxTime, maxTime},
		{"speed", &cfg.Params.InitialSpeed, speed},
		{"angle", &cfg.Params.LaunchAngleDeg, angle},
		{"gravity", &cfg.Params.Gravity, gravity},
		{"x0", &cfg.Params.X0, x0},
		{"y0", &cfg.Params.Y0, y0},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst = o.val
		}
	}
	if flags.Changed("methods") {
		cfg.Methods = append([]string(nil), methods...)
	}
	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	// export binds --format to exportFormat; only plot's flag names a render format.
	if cmd.Name() == "plot" && flags.Changed("format") {
		cfg.Render.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("resolved config",
		"preset", cfg.Preset,
		"methods", strings.Join(cfg.Methods, ","),
		"params", fmt.Sprintf("%+v", cfg.Params))
	return cfg, nil
}

func compareFrom(ctx context.Context, cfg *config.Config) (*experiment.Comparison, error) {
	exp := experiment.New(experiment.Config{
		Params:     cfg.Params,
		Methods:    cfg.Methods,
		Sequential: sequential,
	}, nil, logger)
	return exp.Run(ctx)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmp, err := compareFrom(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return printComparison(os.Stdout, cmp, cfg)
}

func runSingle(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Methods = []string{args[0]}

	cmp, err := compareFrom(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := printComparison(os.Stdout, cmp, cfg); err != nil {
		return err
	}

	last := cmp.Runs[0].Trajectory.Last()
	fmt.Printf("\nfinal sample: t=%.6f x=%.6f y=%.6f\n", last.T, last.X, last.Y)
	return nil
}

func printComparison(w io.Writer, cmp *experiment.Comparison, cfg *config.Config) error {
	fmt.Fprintln(w, viz.ParamsLine(cmp))
	fmt.Fprintln(w, viz.SummaryTable(cmp))
	fmt.Fprintln(w)
	return viz.ASCII(w, cmp.Trajectories(), viz.ASCIIOptions{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Color:  color,
	})
}

func plotComparison(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmp, err := compareFrom(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	trs := cmp.Trajectories()

	switch cfg.Render.Format {
	case "ascii":
		return withOutput(out, func(w io.Writer) error {
			return viz.ASCII(w, trs, viz.ASCIIOptions{Width: cfg.Render.Width, Height: cfg.Render.Height, Color: color})
		})
	case "png":
		if out == "" {
			return fmt.Errorf("png output needs --out")
		}
		return withOutput(out, func(w io.Writer) error {
			return viz.PNG(w, trs, viz.DefaultPNGOptions())
		})
	case "html":
		return withOutput(out, func(w io.Writer) error {
			return viz.HTML(w, trs, 0, 0)
		})
	case "svg":
		return withOutput(out, func(w io.Writer) error {
			return export.SVG(w, trs, 0, 0)
		})
	default:
		return fmt.Errorf("unknown format: %s (available: ascii, png, html, svg)", cfg.Render.Format)
	}
}

func exportComparison(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmp, err := compareFrom(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "csv":
		return withOutput(out, func(w io.Writer) error {
			return export.CSV(w, cmp.Trajectories())
		})
	case "json":
		return withOutput(out, func(w io.Writer) error {
			return export.JSON(w, cmp)
		})
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", exportFormat)
	}
}

// withOutput runs fn against stdout, or against path when it is set.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.Info("wrote output", "path", path)
	return nil
}

func runConvergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rep, err := analysis.Convergence(cmd.Context(), cfg.Params, steps, cfg.Methods, nil)
	if err != nil {
		return err
	}

	fmt.Printf("convergence (exact peak %.6f m, range %.6f m)\n\n", rep.Reference.PeakHeight, rep.Reference.Range)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tDT\tSAMPLES\tPEAK_ERR\tRANGE_ERR")
	for _, m := range rep.Methods {
		for _, p := range rep.ByMethod(m) {
			fmt.Fprintf(w, "%s\t%g\t%d\t%.3e\t%.3e\n", m, p.Dt, p.Samples, p.PeakError, p.RangeError)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, m := range rep.Methods {
		fmt.Printf("%-8s observed order %.2f\n", m, rep.Order[m])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg.Params,
		Methods:   cfg.Methods,
		ParamName: sweepParam,
		ParamMin:  sweepFrom,
		ParamMax:  sweepTo,
		NumSteps:  sweepN,
	}, nil, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(sweepParam), "EXACT_RANGE"}
	for _, m := range cfg.Methods {
		header = append(header, strings.ToUpper(m)+"_RANGE_ERR")
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprintf("%g", r.ParamValue), fmt.Sprintf("%.4f", r.Comparison.Reference.Range)}
		for _, run := range r.Comparison.Runs {
			row = append(row, fmt.Sprintf("%.3e", run.RangeError))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var obj optim.Objective = optim.ExactRange
	if objective != "range" {
		obj = optim.RangeError(objective)
		cfg.Methods = []string{objective}
	}

	g := optim.NewGridSearch([]string{optParam}, [][]float64{optim.Linspace(optFrom, optTo, optN)})
	best, score, err := g.Search(cmd.Context(), cfg.Params, cfg.Methods, obj)
	if err != nil {
		return err
	}

	if objective == "range" {
		fmt.Printf("best %s = %g (range %.4f m)\n", optParam, best[optParam], -score)
	} else {
		fmt.Printf("best %s = %g (%s range error %.3e)\n", optParam, best[optParam], objective, score)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded scenario", "name", sc.Name, "cases", len(sc.Cases))

	results, err := automation.RunScenario(cmd.Context(), sc, nil, logger)
	for _, r := range results {
		fmt.Printf("== %s\n", r.Case)
		fmt.Println(viz.ParamsLine(r.Comparison))
		fmt.Println(viz.SummaryTable(r.Comparison))
		fmt.Println()
	}
	return err
}

func benchMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	dts := []float64{0.01, 0.001, 0.0001}

	fmt.Printf("benchmarking %s\n\n", strings.Join(cfg.Methods, ", "))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range cfg.Methods {
		for _, step := range dts {
			st, err := registry.GetIntegrator(name)
			if err != nil {
				return err
			}
			p := cfg.Params
			p.TimeStep = step

			start := time.Now()
			tr, err := dynamo.Simulate(st, p.Gravity, p.Launch(), p.TimeStep, p.MaxTime)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(tr.Steps()) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\n", name, step, tr.Steps(), elapsed, stepsPerSec)
			logger.Debug("bench", "method", name, "dt", step, "termination", tr.Termination.String())
		}
	}

	return w.Flush()
}
