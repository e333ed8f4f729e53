// Package render draws assembled race-pace series as an interactive HTML
// chart (go-echarts) or a static PNG (gonum/plot).
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/racepace/internal/pace"
)

// Format selects an output encoding.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
)

// Axis titles shared by both renderers.
const (
	XAxisTitle = "Lap"
	YAxisTitle = "Lap Time (s)"
)

// ParseFormat accepts "html", "png" or a file extension such as ".png".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (want html or png)", s)
	}
}

// FormatForPath picks the format from path's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType is the HTTP media type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "text/html; charset=utf-8"
}

// Ext is the file extension of f, without the dot.
func (f Format) Ext() string { return string(f) }

// Chart writes series to w in format f.
func Chart(w io.Writer, f Format, title string, series []pace.ChartSeries) error {
	switch f {
	case FormatHTML:
		return HTML(w, title, series)
	case FormatPNG:
		return PNG(w, title, series, DefaultPNGSize)
	default:
		return fmt.Errorf("unsupported chart format %q", f)
	}
}

// timed reports the points of s that have a duration.
func timed(s pace.ChartSeries) []pace.Point {
	out := make([]pace.Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.LapDuration != nil {
			out = append(out, p)
		}
	}
	return out
}
