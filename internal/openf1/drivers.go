package openf1

import (
	"context"
	"strconv"
)

// Driver is one entrant of a session.
type Driver struct {
	Number   string `json:"driver_number"`
	LastName string `json:"last_name"`
	TeamName string `json:"team_name"`
}

type driverRow struct {
	DriverNumber DriverNumber `json:"driver_number"`
	LastName     string       `json:"last_name"`
	TeamName     string       `json:"team_name"`
}

// Drivers lists the entrants of a session. Rows without a driver number are
// skipped.
func (c *Client) Drivers(ctx context.Context, sessionKey int64) ([]Driver, error) {
	const op = "list drivers"

	var rows []driverRow
	q := query{}.eq("session_key", strconv.FormatInt(sessionKey, 10))
	if err := c.fetch(ctx, op, "/v1/drivers", q, &rows); err != nil {
		return nil, err
	}

	drivers := make([]Driver, 0, len(rows))
	for _, r := range rows {
		if r.DriverNumber == "" {
			continue
		}
		drivers = append(drivers, Driver{
			Number:   string(r.DriverNumber),
			LastName: r.LastName,
			TeamName: r.TeamName,
		})
	}
	return drivers, nil
}
