package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballistic/internal/dynamo"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta}

type ASCIIOptions struct {
	Width  int
	Height int
	Color  bool
}

// ASCII overlays the trajectories as height curves on a common horizontal grid.
func ASCII(w io.Writer, trs []*dynamo.Trajectory, opt ASCIIOptions) error {
	if len(trs) == 0 {
		return fmt.Errorf("viz: nothing to plot")
	}
	if opt.Width < 2 {
		opt.Width = 80
	}
	if opt.Height < 2 {
		opt.Height = 20
	}

	keys, byX := abscissa(trs)
	at := grid(keys, opt.Width)
	series := make([][]float64, len(trs))
	names := make([]string, len(trs))
	for i, tr := range trs {
		series[i] = resample(keys[i], tr.Ys, at)
		names[i] = DisplayName(tr.Method)
	}

	axis := XLabel
	if !byX {
		axis = "Time (s)"
	}
	caption := fmt.Sprintf("%s vs %s [%.2f .. %.2f]", YLabel, axis, at[0], at[len(at)-1])
	if !opt.Color {
		caption += "  " + strings.Join(names, " / ")
	}

	// series already have opt.Width points; asciigraph.Width would re-interpolate across the NaN tails
	opts := []asciigraph.Option{
		asciigraph.Height(opt.Height),
		asciigraph.LowerBound(0),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	}
	if opt.Color {
		colors := make([]asciigraph.AnsiColor, len(trs))
		for i := range colors {
			colors[i] = seriesColors[i%len(seriesColors)]
		}
		opts = append(opts, asciigraph.SeriesColors(colors...), asciigraph.SeriesLegends(names...))
	}

	graph := asciigraph.PlotMany(series, opts...)
	_, err := fmt.Fprintln(w, graph)
	return err
}
