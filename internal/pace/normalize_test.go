package pace

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/testutil"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, ""},
		{"over a minute", testutil.Float(66.3), "1:06.300"},
		{"under a minute", testutil.Float(6.5), "0:06.500"},
		{"typical race lap", testutil.Float(97.284), "1:37.284"},
		{"exact minutes", testutil.Float(120), "2:00.000"},
		{"zero", testutil.Float(0), "0:00.000"},
		{"long lap", testutil.Float(754.05), "12:34.050"},
		{"NaN", testutil.Float(math.NaN()), ""},
		{"positive infinity", testutil.Float(math.Inf(1)), ""},
		{"negative infinity", testutil.Float(math.Inf(-1)), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestBuildLabel(t *testing.T) {
	roster := NewRoster([]openf1.Driver{{Number: "16", LastName: "Leclerc", TeamName: "Ferrari"}})

	assert.Equal(t, "16 LECLERC", BuildLabel("16", roster))
	assert.Equal(t, "16 LECLERC", BuildLabel(" 16", roster))
	assert.Equal(t, "55 N/A", BuildLabel("55", roster))
	assert.Equal(t, "16 N/A", BuildLabel("16", Roster{}))
}

func TestNormalize(t *testing.T) {
	roster := NewRoster([]openf1.Driver{{Number: "1", LastName: "Verstappen", TeamName: "Red Bull Racing"}})
	laps := []openf1.LapRecord{
		{DriverNumber: "1", LapNumber: 2, LapDuration: testutil.Float(97.284)},
		{DriverNumber: "44", LapNumber: 2, LapDuration: nil},
	}

	want := []Row{
		{DriverNumber: "1", Label: "1 VERSTAPPEN", LapNumber: 2, LapDuration: testutil.Float(97.284), Formatted: "1:37.284"},
		{DriverNumber: "44", Label: "44 N/A", LapNumber: 2, Formatted: ""},
	}
	if diff := cmp.Diff(want, Normalize(laps, roster)); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDriverNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"16 55 1", []string{"16", "55", "1"}},
		{"16,55, 1", []string{"16", "55", "1"}},
		{" 16\t16 ,,", []string{"16"}},
		{"", []string{}},
		{" , ", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDriverNumbers(tt.in), "input %q", tt.in)
	}
}
