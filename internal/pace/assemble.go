package pace

import (
	"sort"
)

// Point is one lap in a series.
type Point struct {
	LapNumber   int      `json:"lap_number"`
	LapDuration *float64 `json:"lap_duration"`
	Formatted   string   `json:"lap_duration_fmt"`
}

// ChartSeries is one driver's line: the whole contract handed to renderers.
type ChartSeries struct {
	Label        string    `json:"label"`
	DriverNumber string    `json:"driver_number"`
	TeamName     string    `json:"team_name"`
	Color        string    `json:"color"`
	Points       []Point   `json:"points"`
	Stats        PaceStats `json:"stats"`
}

// Assemble groups rows by label into one series per driver, in first-seen
// order, with points sorted by lap. Labels missing from assignment are drawn
// in FallbackColor.
func Assemble(rows []Row, assignment Assignment) []ChartSeries {
	index := make(map[string]int)
	var series []ChartSeries
	for _, r := range rows {
		i, ok := index[r.Label]
		if !ok {
			i = len(series)
			index[r.Label] = i
			s := ChartSeries{Label: r.Label, DriverNumber: r.DriverNumber, Color: FallbackColor, TeamName: UnknownTeam}
			for _, a := range assignment {
				if a.DriverLabel == r.Label {
					s.Color, s.TeamName = a.ColorHex, a.TeamName
					break
				}
			}
			series = append(series, s)
		}
		series[i].Points = append(series[i].Points, Point{
			LapNumber:   r.LapNumber,
			LapDuration: r.LapDuration,
			Formatted:   r.Formatted,
		})
	}

	for i := range series {
		pts := series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].LapNumber < pts[b].LapNumber })
		series[i].Stats = SummarizePace(pts)
	}
	return series
}
