package pace

import (
	"github.com/banshee-data/racepace/internal/openf1"
)

// ColorAssignment is the color chosen for one driver.
type ColorAssignment struct {
	DriverNumber string `json:"driver_number"`
	DriverLabel  string `json:"driver_label"`
	TeamName     string `json:"team_name"`
	ColorHex     string `json:"color"`
	// Shaded is true when a teammate already holds the base color.
	Shaded bool `json:"shaded"`
}

// Assignment lists colors in driver arrival order.
type Assignment []ColorAssignment

// ColorOf returns the color assigned to label.
func (a Assignment) ColorOf(label string) (string, bool) {
	for _, c := range a {
		if c.DriverLabel == label {
			return c.ColorHex, true
		}
	}
	return "", false
}

// DistinctDriverNumbers lists each driver once, in the order they first
// appear in laps. That order decides who gets a team's base color.
func DistinctDriverNumbers(laps []openf1.LapRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range laps {
		n := openf1.NumberText(l.DriverNumber)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// AssignColors gives the first driver of each team, in numbers order, the
// team's base color and every later teammate the palette shade. All later
// teammates share one shade.
func AssignColors(numbers []string, roster Roster, palette Palette) Assignment {
	seenTeams := make(map[string]bool)
	out := make(Assignment, 0, len(numbers))
	for _, n := range numbers {
		team := roster.Team(n)
		a := ColorAssignment{
			DriverNumber: openf1.NumberText(n),
			DriverLabel:  BuildLabel(n, roster),
			TeamName:     team,
		}
		if !seenTeams[team] {
			seenTeams[team] = true
			a.ColorHex = palette.BaseColor(team)
		} else {
			a.ColorHex = palette.Shade(team)
			a.Shaded = true
		}
		out = append(out, a)
	}
	return out
}
