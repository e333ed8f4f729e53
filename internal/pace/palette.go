package pace

import (
	"strings"
)

// FallbackColor is the base color of teams missing from the table.
const FallbackColor = "#333333"

// teamColors is the built-in constructor palette. It is never mutated;
// overrides build a new Palette.
var teamColors = map[string]string{
	"Red Bull Racing": "#3671C6",
	"Ferrari":         "#E80020",
	"Mercedes":        "#27F4D2",
	"McLaren":         "#FF8000",
	"Aston Martin":    "#229971",
	"Alpine":          "#0093CC",
	"Williams":        "#64C4FF",
	"RB":              "#6692FF",
	"Sauber":          "#52E252",
	"Kick Sauber":     "#52E252",
	"Haas F1 Team":    "#B6BABD",
	"AlphaTauri":      "#2B4562",
	"Alfa Romeo":      "#900000",
}

// TeamColors returns a copy of the built-in team table.
func TeamColors() map[string]string {
	out := make(map[string]string, len(teamColors))
	for k, v := range teamColors {
		out[k] = v
	}
	return out
}

// Palette resolves team base colors and teammate shades.
type Palette struct {
	colors   map[string]string
	fallback string
	factor   float64
}

// DefaultPalette uses the built-in table, FallbackColor and
// DefaultLightnessFactor.
func DefaultPalette() Palette {
	return Palette{colors: teamColors, fallback: FallbackColor, factor: DefaultLightnessFactor}
}

// NewPalette layers overrides on the built-in table. An invalid fallback
// becomes FallbackColor; a factor <= 0 becomes DefaultLightnessFactor.
func NewPalette(overrides map[string]string, fallback string, factor float64) Palette {
	p := DefaultPalette()
	if len(overrides) > 0 {
		p.colors = TeamColors()
		for team, c := range overrides {
			p.colors[team] = c
		}
	}
	if ValidHex(fallback) {
		p.fallback = normalizeHex(fallback)
	}
	if factor > 0 {
		p.factor = factor
	}
	return p
}

// BaseColor is the team's table color as "#RRGGBB" in the table's casing.
// Unknown teams and malformed entries resolve to the fallback.
func (p Palette) BaseColor(team string) string {
	c, ok := p.colors[team]
	if !ok || !ValidHex(c) {
		return p.fallback
	}
	return normalizeHex(c)
}

// Shade is the color given to every teammate after the first.
func (p Palette) Shade(team string) string {
	return TeammateShade(p.BaseColor(team), p.factor)
}

// Factor is the lightness factor used for shades.
func (p Palette) Factor() float64 { return p.factor }

// Fallback is the color for unknown teams.
func (p Palette) Fallback() string { return p.fallback }

func normalizeHex(s string) string {
	return "#" + strings.TrimLeft(strings.TrimSpace(s), "#")
}
