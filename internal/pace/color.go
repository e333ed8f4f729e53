package pace

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultLightnessFactor separates a teammate's shade from the base color.
	DefaultLightnessFactor = 1.4
	// Black is returned for colors that cannot be parsed.
	Black = "#000000"

	// nudge is the lightness step used when the factor alone leaves the
	// color unchanged (pure black never lightens by multiplication).
	nudge = 0.2
)

// ParseHex reads "#rrggbb" or "rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimLeft(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ValidHex reports whether s parses as a 6-digit hex color.
func ValidHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// FormatHex renders c as lowercase "#rrggbb".
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// AdjustLightness shifts a color's HLS lightness, keeping hue and saturation:
// dark colors (l < 0.5) are multiplied by factor, light ones divided by it,
// clamped to [0, 1]. Unparseable input yields Black. A factor <= 0 means
// DefaultLightnessFactor.
func AdjustLightness(hex string, factor float64) string {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	if factor <= 0 {
		factor = DefaultLightnessFactor
	}
	h, l, s := rgbToHLS(c)
	if l < 0.5 {
		l *= factor
	} else {
		l /= factor
	}
	return FormatHex(hlsToRGB(h, clamp01(l), s))
}

// TeammateShade is AdjustLightness with the guarantee that the result differs
// from base whenever base itself is valid.
func TeammateShade(base string, factor float64) string {
	shade := AdjustLightness(base, factor)
	c, err := ParseHex(base)
	if err != nil || shade != FormatHex(c) {
		return shade
	}
	h, l, s := rgbToHLS(c)
	if l < 0.5 {
		l += nudge
	} else {
		l -= nudge
	}
	return FormatHex(hlsToRGB(h, clamp01(l), s))
}

// rgbToHLS converts to hue, lightness, saturation, each in [0, 1].
func rgbToHLS(c color.RGBA) (h, l, s float64) {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l = (minc + maxc) / 2
	if minc == maxc {
		return 0, l, 0
	}
	d := maxc - minc
	if l <= 0.5 {
		s = d / (maxc + minc)
	} else {
		s = d / (2 - maxc - minc)
	}
	rc := (maxc - r) / d
	gc := (maxc - g) / d
	bc := (maxc - b) / d
	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return h, l, s
}

// hlsToRGB converts back to 8-bit RGB, truncating each channel.
func hlsToRGB(h, l, s float64) color.RGBA {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l <= 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}
	return color.RGBA{R: channel(rf), G: channel(gf), B: channel(bf), A: 255}
}

func hueToRGB(p, q, t float64) float64 {
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*t*6
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(clamp01(v) * 255)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
