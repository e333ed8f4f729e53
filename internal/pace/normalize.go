package pace

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/racepace/internal/openf1"
)

// FormatDuration renders seconds as race-clock text, "M:SS.mmm". A nil,
// NaN or infinite duration renders as "".
func FormatDuration(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) {
		return ""
	}
	s := *seconds
	minutes := math.Floor(s / 60)
	rem := s - minutes*60
	return fmt.Sprintf("%d:%06.3f", int64(minutes), rem)
}

// BuildLabel is the series label for a driver, e.g. "16 LECLERC".
func BuildLabel(number string, roster Roster) string {
	return openf1.NumberText(number) + " " + roster.LastName(number)
}

// Row is a lap enriched for display.
type Row struct {
	DriverNumber string
	Label        string
	LapNumber    int
	LapDuration  *float64
	Formatted    string
}

// Normalize labels and formats every lap, keeping input order.
func Normalize(laps []openf1.LapRecord, roster Roster) []Row {
	rows := make([]Row, 0, len(laps))
	for _, l := range laps {
		n := openf1.NumberText(l.DriverNumber)
		rows = append(rows, Row{
			DriverNumber: n,
			Label:        BuildLabel(n, roster),
			LapNumber:    l.LapNumber,
			LapDuration:  l.LapDuration,
			Formatted:    FormatDuration(l.LapDuration),
		})
	}
	return rows
}

// ParseDriverNumbers splits user input such as "16, 55 1" on commas and
// whitespace. Numbers are canonicalized and deduplicated in input order.
func ParseDriverNumbers(raw string) []string {
	return openf1.CanonicalNumbers(strings.Fields(strings.ReplaceAll(raw, ",", " ")))
}
