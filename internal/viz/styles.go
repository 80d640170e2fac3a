package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/ballistic/internal/experiment"
	"github.com/san-kum/ballistic/internal/metrics"
)

const (
	Title  = "Projectile Motion: Euler vs RK4"
	XLabel = "Horizontal Distance (m)"
	YLabel = "Vertical Height (m)"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Reference row
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)
)

// methodColors is indexed by run order. Euler is blue and RK4 is red in every renderer.
var methodColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

func methodColor(i int) color.RGBA {
	return methodColors[i%len(methodColors)]
}

// MethodHex is methodColor as a CSS hex string.
func MethodHex(i int) string {
	c := methodColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DisplayName is the legend label for a method.
func DisplayName(method string) string {
	switch method {
	case "euler":
		return "Euler Method"
	case "rk4":
		return "RK4 Method"
	default:
		return method
	}
}

// SummaryTable lists each run's metrics next to the closed-form reference.
func SummaryTable(cmp *experiment.Comparison) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers("method", "samples", "end", "peak (m)", "peak err", "range (m)", "range err", "flight (s)", "elapsed").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == len(cmp.Runs):
				return Subtle
			default:
				return CellStyle
			}
		})

	for _, r := range cmp.Runs {
		peakErr, rangeErr := percent(r.PeakError), percent(r.RangeError)
		if r.Trajectory.Len() == 1 {
			peakErr, rangeErr = "n/a", "n/a"
		}
		t.Row(
			r.Method,
			fmt.Sprintf("%d", r.Trajectory.Len()),
			r.Trajectory.Termination.String(),
			fmt.Sprintf("%.4f", r.Metrics[metrics.NamePeakHeight]),
			peakErr,
			fmt.Sprintf("%.4f", r.Metrics[metrics.NameRange]),
			rangeErr,
			fmt.Sprintf("%.4f", r.Metrics[metrics.NameFlightTime]),
			r.Elapsed.String(),
		)
	}
	ref := cmp.Reference
	t.Row("exact", "", "", fmt.Sprintf("%.4f", ref.PeakHeight), "", fmt.Sprintf("%.4f", ref.Range), "", fmt.Sprintf("%.4f", ref.FlightTime), "")

	return t.String()
}

// ParamsLine renders the launch parameters as label/value pairs on one line.
func ParamsLine(cmp *experiment.Comparison) string {
	p := cmp.Params
	pairs := []struct {
		label string
		value string
	}{
		{"v0", fmt.Sprintf("%g m/s", p.InitialSpeed)},
		{"angle", fmt.Sprintf("%g°", p.LaunchAngleDeg)},
		{"g", fmt.Sprintf("%g m/s²", p.Gravity)},
		{"dt", fmt.Sprintf("%g s", p.TimeStep)},
		{"max", fmt.Sprintf("%g s", p.MaxTime)},
		{"start", fmt.Sprintf("(%g, %g)", p.X0, p.Y0)},
	}
	parts := make([]string, len(pairs))
	for i, kv := range pairs {
		parts[i] = MetricLabel.Render(kv.label+" ") + MetricValue.Render(kv.value)
	}
	return strings.Join(parts, "  ")
}

func percent(rel float64) string {
	if math.IsNaN(rel) || math.IsInf(rel, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f%%", rel*100)
}
