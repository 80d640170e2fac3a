package viz

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/san-kum/ballistic/internal/dynamo"
)

// HTML writes a self-contained echarts page with the overlay. The x axis is a
// value axis so runs with different sample counts share one scale.
func HTML(w io.Writer, trs []*dynamo.Trajectory, width, height int) error {
	if len(trs) == 0 {
		return fmt.Errorf("viz: nothing to plot")
	}
	if width <= 0 || height <= 0 {
		width, height = 960, 540
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{Title: Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: XLabel, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: YLabel}),
	)

	for i, tr := range trs {
		data := make([]opts.LineData, tr.Len())
		for j := range data {
			data[j] = opts.LineData{Value: []interface{}{tr.Xs[j], tr.Ys[j]}}
		}

		style := opts.LineStyle{Color: MethodHex(i), Width: 2}
		if i%2 == 1 {
			style.Type = "dashed"
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(style),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: MethodHex(i)}),
		}
		if i == 0 {
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "ground", YAxis: 0}),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{Symbol: []string{"none", "none"}}),
			)
		}
		line.AddSeries(DisplayName(tr.Method), data, seriesOpts...)
	}

	return line.Render(w)
}
