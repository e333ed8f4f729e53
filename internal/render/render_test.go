package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/racepace/internal/pace"
	"github.com/banshee-data/racepace/internal/testutil"
)

func fixtureSeries() []pace.ChartSeries {
	return []pace.ChartSeries{
		{
			Label: "1 VERSTAPPEN", DriverNumber: "1", TeamName: "Red Bull Racing", Color: "#3671C6",
			Points: []pace.Point{
				{LapNumber: 2, LapDuration: testutil.Float(97.284), Formatted: "1:37.284"},
				{LapNumber: 3, LapDuration: testutil.Float(96.512), Formatted: "1:36.512"},
			},
		},
		{
			Label: "2 PEREZ", DriverNumber: "2", TeamName: "Red Bull Racing", Color: "#83a8dd",
			Points: []pace.Point{
				{LapNumber: 2, LapDuration: testutil.Float(98.001), Formatted: "1:38.001"},
				{LapNumber: 3},
			},
		},
		{Label: "44 N/A", DriverNumber: "44", TeamName: "Unknown", Color: "not-a-color", Points: []pace.Point{{LapNumber: 2}}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHTML, false},
		{"html", FormatHTML, false},
		{".HTML", FormatHTML, false},
		{"htm", FormatHTML, false},
		{"png", FormatPNG, false},
		{".png", FormatPNG, false},
		{"svg", "", true},
		{".pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	f, err := FormatForPath("out/race_pace_Sakhir.png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
	assert.Equal(t, "png", FormatPNG.Ext())
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "Race Pace Analysis: Sakhir", fixtureSeries()))
	out := buf.String()

	assert.Contains(t, out, "<title>Race Pace Analysis: Sakhir</title>")
	assert.Contains(t, out, "1 VERSTAPPEN")
	assert.Contains(t, out, "2 PEREZ")
	assert.Contains(t, out, "#3671C6")
	assert.Contains(t, out, "#83a8dd")
	assert.Contains(t, out, YAxisTitle)
	assert.Contains(t, out, "1 VERSTAPPEN lap 3: 1:36.512")
	assert.Contains(t, out, "drivers=3 timed laps=3")
	assert.Contains(t, out, "p.marker + p.name")
	assert.NotContains(t, out, "__f__")
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, "Race Pace Analysis: Sakhir", fixtureSeries(), Size{Width: 400, Height: 200}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Positive(t, b.Dx())
	assert.Positive(t, b.Dy())
}

func TestPNG_NoTimedLaps(t *testing.T) {
	var buf bytes.Buffer
	series := []pace.ChartSeries{{Label: "5 N/A", Color: pace.FallbackColor, Points: []pace.Point{{LapNumber: 2}}}}
	require.NoError(t, PNG(&buf, "empty", series, Size{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestChart_Dispatch(t *testing.T) {
	var html, img bytes.Buffer
	require.NoError(t, Chart(&html, FormatHTML, "t", fixtureSeries()))
	require.NoError(t, Chart(&img, FormatPNG, "t", fixtureSeries()))
	assert.Contains(t, html.String(), "<html")
	assert.True(t, bytes.HasPrefix(img.Bytes(), []byte("\x89PNG")))

	assert.Error(t, Chart(&bytes.Buffer{}, Format("svg"), "t", nil))
}
