package openf1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/banshee-data/racepace/internal/monitoring"
)

// LapRecord is one completed lap. LapDuration is nil when timing was lost,
// e.g. under a red flag.
type LapRecord struct {
	DriverNumber string   `json:"driver_number"`
	LapNumber    int      `json:"lap_number"`
	LapDuration  *float64 `json:"lap_duration"`
	IsPitOutLap  bool     `json:"is_pit_out_lap"`
}

type lapRow struct {
	DriverNumber DriverNumber `json:"driver_number"`
	LapNumber    int          `json:"lap_number"`
	LapDuration  *float64     `json:"lap_duration"`
	IsPitOutLap  *bool        `json:"is_pit_out_lap"`
}

// MinLapNumber is the lowest lap kept: the opening lap is excluded from pace.
const MinLapNumber = 2

// Laps fetches the racing laps of the given drivers in one request: lap one
// and pit-out laps are filtered by the server, and again here in case a
// deployment ignores a filter. Returns ErrInvalidInput for no drivers and
// ErrEmptyResult when nothing matched.
func (c *Client) Laps(ctx context.Context, sessionKey int64, driverNumbers []string) ([]LapRecord, error) {
	const op = "fetch laps"

	numbers := CanonicalNumbers(driverNumbers)
	if len(numbers) == 0 {
		return nil, newError(ErrInvalidInput, op, errors.New("no driver numbers"))
	}

	q := query{}.
		gt("lap_number", strconv.Itoa(MinLapNumber-1)).
		eq("session_key", strconv.FormatInt(sessionKey, 10)).
		eq("is_pit_out_lap", "false")
	for _, n := range numbers {
		q = q.eq("driver_number", n)
	}

	var rows []lapRow
	if err := c.fetch(ctx, op, "/v1/laps", q, &rows); err != nil {
		return nil, err
	}

	laps := make([]LapRecord, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		if r.LapNumber < MinLapNumber || (r.IsPitOutLap != nil && *r.IsPitOutLap) || r.DriverNumber == "" {
			dropped++
			continue
		}
		laps = append(laps, LapRecord{
			DriverNumber: string(r.DriverNumber),
			LapNumber:    r.LapNumber,
			LapDuration:  r.LapDuration,
		})
	}
	if dropped > 0 {
		monitoring.Debugf("openf1: session %d: dropped %d rows outside the lap filter", sessionKey, dropped)
	}

	if len(laps) == 0 {
		return nil, newError(ErrEmptyResult, op, fmt.Errorf("no laps for drivers %v in session %d", numbers, sessionKey))
	}
	return laps, nil
}

// CanonicalNumbers canonicalizes numbers, dropping blanks and repeats while
// keeping first-seen order.
func CanonicalNumbers(numbers []string) []string {
	seen := make(map[string]bool, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = CanonicalNumber(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
