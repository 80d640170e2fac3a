package viz

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/san-kum/ballistic/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

type PNGOptions struct {
	WidthIn  float64
	HeightIn float64
	DPI      int
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{WidthIn: 10, HeightIn: 6, DPI: 150}
}

// Figure builds the overlay plot: one line per trajectory (the second dashed),
// a grey zero-height line, grid and legend.
func Figure(trs []*dynamo.Trajectory) (*plot.Plot, error) {
	if len(trs) == 0 {
		return nil, fmt.Errorf("viz: nothing to plot")
	}
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, tr := range trs {
		pts := make(plotter.XYs, tr.Len())
		for j := range pts {
			pts[j].X = tr.Xs[j]
			pts[j].Y = tr.Ys[j]
			lo = math.Min(lo, tr.Xs[j])
			hi = math.Max(hi, tr.Xs[j])
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", tr.Method, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = methodColor(i)
		if i%2 == 1 {
			line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}
		p.Add(line)
		p.Legend.Add(DisplayName(tr.Method), line)
	}

	if hi <= lo {
		hi = lo + 1
	}
	ground, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}})
	if err != nil {
		return nil, err
	}
	ground.LineStyle.Width = vg.Points(1)
	ground.LineStyle.Color = color.Gray{Y: 0x80}
	p.Add(ground)

	return p, nil
}

// PNG draws Figure(trs) onto a raster canvas and encodes it to w.
func PNG(w io.Writer, trs []*dynamo.Trajectory, opt PNGOptions) error {
	p, err := Figure(trs)
	if err != nil {
		return err
	}
	if opt.WidthIn <= 0 || opt.HeightIn <= 0 || opt.DPI <= 0 {
		opt = DefaultPNGOptions()
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opt.WidthIn)*vg.Inch, vg.Length(opt.HeightIn)*vg.Inch),
		vgimg.UseDPI(opt.DPI),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return bw.Flush()
}
