package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/racepace/internal/pace"
)

// Size is an image size.
type Size struct {
	Width, Height vg.Length
}

// DefaultPNGSize matches the proportions of the HTML chart.
var DefaultPNGSize = Size{Width: 14 * vg.Inch, Height: 7 * vg.Inch}

var (
	darkBackground = color.RGBA{R: 0x10, G: 0x0c, B: 0x2a, A: 0xff}
	lightText      = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	gridColor      = color.RGBA{R: 0x44, G: 0x44, B: 0x55, A: 0xff}
)

// PNG renders the series as a static line plot on a dark background.
// Untimed laps are left out of the line.
func PNG(w io.Writer, title string, series []pace.ChartSeries, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultPNGSize
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = XAxisTitle
	p.Y.Label.Text = YAxisTitle
	styleDark(p)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for _, s := range series {
		pts := timed(s)
		if len(pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, 0, len(pts))
		for _, pt := range pts {
			xys = append(xys, plotter.XY{X: float64(pt.LapNumber), Y: *pt.LapDuration})
		}

		c, err := pace.ParseHex(s.Color)
		if err != nil {
			c, _ = pace.ParseHex(pace.FallbackColor)
		}

		l, sc, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Label, err)
		}
		l.Color = c
		l.Width = vg.Points(1.5)
		sc.Color = c
		sc.Radius = vg.Points(2)
		p.Add(l, sc)
		p.Legend.Add(s.Label, l, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("render png chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png chart: %w", err)
	}
	return nil
}

func styleDark(p *plot.Plot) {
	p.BackgroundColor = darkBackground
	p.Title.TextStyle.Color = lightText
	p.Legend.TextStyle.Color = lightText
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.LineStyle.Color = lightText
		a.Label.TextStyle.Color = lightText
		a.Tick.Label.Color = lightText
		a.Tick.LineStyle.Color = lightText
	}
}
