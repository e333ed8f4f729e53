package openf1

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SessionNameRace is the session_name OpenF1 gives grand prix races.
const SessionNameRace = "Race"

// Session is one timed event of a race weekend.
type Session struct {
	Key              int64     `json:"session_key"`
	CircuitShortName string    `json:"circuit_short_name"`
	DateStart        time.Time `json:"date_start"`
	SessionName      string    `json:"session_name,omitempty"`
	CountryName      string    `json:"country_name,omitempty"`
	Year             int       `json:"year,omitempty"`
}

// unknownCircuit labels sessions the API returned without a circuit name.
const unknownCircuit = "Unknown GP"

type sessionRow struct {
	SessionKey       *int64  `json:"session_key"`
	CircuitShortName *string `json:"circuit_short_name"`
	DateStart        *string `json:"date_start"`
	SessionName      string  `json:"session_name"`
	CountryName      string  `json:"country_name"`
	Year             int     `json:"year"`
}

// ListRaceSessions returns every race session of year ordered by start time.
// The API does not guarantee order. An empty slice is not an error.
func (c *Client) ListRaceSessions(ctx context.Context, year int) ([]Session, error) {
	const op = "list race sessions"

	var rows []sessionRow
	q := query{}.eq("year", strconv.Itoa(year)).eq("session_name", SessionNameRace)
	if err := c.fetch(ctx, op, "/v1/sessions", q, &rows); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(rows))
	for i, r := range rows {
		if r.SessionKey == nil {
			return nil, newError(ErrParse, op, fmt.Errorf("row %d: missing session_key", i))
		}
		if r.DateStart == nil {
			return nil, newError(ErrParse, op, fmt.Errorf("session %d: missing date_start", *r.SessionKey))
		}
		start, err := parseTimestamp(*r.DateStart)
		if err != nil {
			return nil, newError(ErrParse, op, fmt.Errorf("session %d: %w", *r.SessionKey, err))
		}
		circuit := unknownCircuit
		if r.CircuitShortName != nil && *r.CircuitShortName != "" {
			circuit = *r.CircuitShortName
		}
		sessions = append(sessions, Session{
			Key:              *r.SessionKey,
			CircuitShortName: circuit,
			DateStart:        start,
			SessionName:      r.SessionName,
			CountryName:      r.CountryName,
			Year:             r.Year,
		})
	}

	SortSessions(sessions)
	return sessions, nil
}

// SortSessions orders sessions by start time, keeping API order for ties.
func SortSessions(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].DateStart.Before(sessions[j].DateStart)
	})
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp accepts OpenF1's ISO-8601 timestamps; ones without an
// offset are taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date_start %q", s)
}

// FindSession picks a session by key ("9158") or by case-insensitive circuit
// short name ("monza"). The boolean is false when nothing matches.
func FindSession(sessions []Session, selector string) (Session, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Session{}, false
	}
	if key, err := strconv.ParseInt(selector, 10, 64); err == nil {
		for _, s := range sessions {
			if s.Key == key {
				return s, true
			}
		}
	}
	for _, s := range sessions {
		if strings.EqualFold(s.CircuitShortName, selector) {
			return s, true
		}
	}
	return Session{}, false
}
