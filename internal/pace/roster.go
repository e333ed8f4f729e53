package pace

import (
	"context"
	"strings"

	"github.com/banshee-data/racepace/internal/openf1"
)

const (
	// UnknownLastName labels a driver number missing from the roster.
	UnknownLastName = "N/A"
	// UnknownTeam is the team of a driver number missing from the roster.
	UnknownTeam = "Unknown"
)

// DriverSource lists the entrants of a session.
type DriverSource interface {
	Drivers(ctx context.Context, sessionKey int64) ([]openf1.Driver, error)
}

// Roster maps canonical driver numbers to identities for one session. The
// zero value is an empty roster; every lookup then degrades to N/A/Unknown.
type Roster struct {
	entries map[string]openf1.Driver
}

// NewRoster indexes drivers by canonical number. A later duplicate replaces
// an earlier one.
func NewRoster(drivers []openf1.Driver) Roster {
	r := Roster{entries: make(map[string]openf1.Driver, len(drivers))}
	for _, d := range drivers {
		n := openf1.CanonicalNumber(d.Number)
		if n == "" {
			continue
		}
		d.Number = n
		r.entries[n] = d
	}
	return r
}

// ResolveRoster fetches the session's drivers into a fresh roster. On failure
// it returns an empty roster together with the error: callers log the error
// and carry on.
func ResolveRoster(ctx context.Context, src DriverSource, sessionKey int64) (Roster, error) {
	drivers, err := src.Drivers(ctx, sessionKey)
	if err != nil {
		return Roster{}, err
	}
	return NewRoster(drivers), nil
}

// Lookup finds a driver by number given as text or as a number.
func (r Roster) Lookup(number any) (openf1.Driver, bool) {
	d, ok := r.entries[openf1.NumberText(number)]
	return d, ok
}

// LastName is the upper-cased last name, or N/A.
func (r Roster) LastName(number any) string {
	d, ok := r.Lookup(number)
	if !ok || strings.TrimSpace(d.LastName) == "" {
		return UnknownLastName
	}
	return strings.ToUpper(d.LastName)
}

// Team is the driver's team name, or Unknown.
func (r Roster) Team(number any) string {
	d, ok := r.Lookup(number)
	if !ok || strings.TrimSpace(d.TeamName) == "" {
		return UnknownTeam
	}
	return d.TeamName
}

// Len is the number of distinct drivers.
func (r Roster) Len() int { return len(r.entries) }
