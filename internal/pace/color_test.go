package pace

import (
	"image/color"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#3671C6")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x36, G: 0x71, B: 0xc6, A: 255}, c)

	c, err = ParseHex("27F4D2")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xf4), c.G)

	for _, bad := range []string{"", "#", "#12345", "#1234567", "#GGGGGG", "red", "#+12345", "0x1234"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, "ParseHex(%q)", bad)
		assert.False(t, ValidHex(bad))
	}
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "#3671c6", FormatHex(color.RGBA{R: 0x36, G: 0x71, B: 0xc6, A: 255}))
	assert.Equal(t, "#000000", FormatHex(color.RGBA{}))
}

func TestHLSRoundTrip(t *testing.T) {
	for _, hex := range []string{"#3671C6", "#E80020", "#27F4D2", "#FF8000", "#52E252", "#B6BABD", "#900000", "#ffffff", "#000000"} {
		c, err := ParseHex(hex)
		require.NoError(t, err)
		h, l, s := rgbToHLS(c)
		back := hlsToRGB(h, l, s)
		// Truncation may lose at most one step per channel.
		assert.InDelta(t, float64(c.R), float64(back.R), 1, hex)
		assert.InDelta(t, float64(c.G), float64(back.G), 1, hex)
		assert.InDelta(t, float64(c.B), float64(back.B), 1, hex)
	}
}

func TestAdjustLightness(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		// lightness 0.494 is lightened to 0.692
		{"red bull lightens", "#3671C6", "#83a8dd"},
		// lightness 0.455, fully saturated
		{"ferrari lightens", "#E80020", "#fe455f"},
		{"grey lightens", "#333333", "#474747"},
		{"white darkens", "#FFFFFF", "#b6b6b6"},
		{"unparseable", "not-a-color", Black},
		{"empty", "", Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustLightness(tt.in, DefaultLightnessFactor))
		})
	}
}

// Shades of the built-in table as computed by Python's colorsys round trip with
// int() truncation, factor 1.4.
var colorsysShades = map[string]string{
	"#3671C6": "#83a8dd",
	"#E80020": "#fe455f",
	"#27F4D2": "#09c0a2",
	"#FF8000": "#b65b00",
	"#229971": "#33d19c",
	"#0093CC": "#1ec0ff",
	"#64C4FF": "#009dfd",
	"#6692FF": "#0049ff",
	"#52E252": "#1fbc1f",
	"#B6BABD": "#7e858a",
	"#2B4562": "#3c6089",
	"#900000": "#c90000",
	"#333333": "#474747",
}

func TestTeammateShade_BuiltInTable(t *testing.T) {
	bases := []string{FallbackColor}
	for _, c := range TeamColors() {
		bases = append(bases, c)
	}
	for _, base := range bases {
		want, ok := colorsysShades[base]
		require.True(t, ok, "no reference shade for %s", base)
		assert.Equal(t, want, AdjustLightness(base, DefaultLightnessFactor), base)
		assert.Equal(t, want, TeammateShade(base, DefaultLightnessFactor), base)
	}
}

func TestAdjustLightness_PreservesHue(t *testing.T) {
	for _, hex := range []string{"#3671C6", "#229971", "#FF8000", "#64C4FF"} {
		base, _ := ParseHex(hex)
		shade, err := ParseHex(AdjustLightness(hex, DefaultLightnessFactor))
		require.NoError(t, err)

		h0, l0, _ := rgbToHLS(base)
		h1, l1, _ := rgbToHLS(shade)
		assert.InDelta(t, h0, h1, 0.01, "hue of %s", hex)
		assert.NotEqual(t, l0, l1, "lightness of %s", hex)
	}
}

func TestAdjustLightness_NonPositiveFactorUsesDefault(t *testing.T) {
	assert.Equal(t, AdjustLightness("#3671C6", DefaultLightnessFactor), AdjustLightness("#3671C6", 0))
	assert.Equal(t, AdjustLightness("#3671C6", DefaultLightnessFactor), AdjustLightness("#3671C6", -2))
}

func TestTeammateShade_NeverEqualsBase(t *testing.T) {
	for _, base := range []string{"#000000", "#FFFFFF", "#333333", "#3671C6", "#E80020", "#010101", "#7f7f7f"} {
		shade := TeammateShade(base, DefaultLightnessFactor)
		assert.Regexp(t, hexPattern, shade)
		c, _ := ParseHex(base)
		assert.NotEqual(t, FormatHex(c), shade, "shade of %s", base)
	}

	// A factor of 1 is a fixed point everywhere; the nudge still separates.
	assert.NotEqual(t, "#3671c6", TeammateShade("#3671C6", 1))
	assert.Equal(t, Black, TeammateShade("bogus", DefaultLightnessFactor))
}
