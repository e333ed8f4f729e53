package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/racepace/internal/pace"
)

// tooltipFormatter lists each hovered point by its data name, which carries
// the formatted lap time.
const tooltipFormatter = `function (params) {
	return params.map(function (p) { return p.marker + p.name; }).join('<br/>');
}`

// HTML renders a self-contained line chart page, one line per series drawn in
// the series color. Hovering a point shows the race-clock lap time. Untimed
// laps are left out of the line.
func HTML(w io.Writer, title string, series []pace.ChartSeries) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "1200px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle(series)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis", Formatter: opts.FuncOpts(tooltipFormatter)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: XAxisTitle, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: YAxisTitle, NameLocation: "middle", NameGap: 45, Scale: opts.Bool(true)}),
	)

	for _, s := range series {
		pts := timed(s)
		data := make([]opts.LineData, 0, len(pts))
		for _, p := range pts {
			data = append(data, opts.LineData{
				Name:  fmt.Sprintf("%s lap %d: %s", s.Label, p.LapNumber, p.Formatted),
				Value: []interface{}{p.LapNumber, *p.LapDuration},
			})
		}
		line.AddSeries(s.Label, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}

func subtitle(series []pace.ChartSeries) string {
	laps := 0
	for _, s := range series {
		laps += len(timed(s))
	}
	return fmt.Sprintf("drivers=%d timed laps=%d", len(series), laps)
}
