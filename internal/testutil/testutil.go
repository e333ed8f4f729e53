// Package testutil provides shared test utilities and fixtures.
//
// The fixtures mirror OpenF1 payloads closely enough to exercise decoding:
// driver numbers arrive as JSON numbers, sessions arrive out of order and one
// lap has no recorded duration.
package testutil

import (
	"net/http"
	"testing"

	"github.com/banshee-data/racepace/internal/httputil"
)

// SessionKey is the session every fixture belongs to.
const SessionKey = 9158

// SessionsJSON lists three 2024 races, deliberately not in start order.
const SessionsJSON = `[
  {"session_key": 9472, "session_name": "Race", "circuit_short_name": "Melbourne", "country_name": "Australia", "date_start": "2024-03-24T04:00:00+00:00", "year": 2024},
  {"session_key": 9158, "session_name": "Race", "circuit_short_name": "Sakhir", "country_name": "Bahrain", "date_start": "2024-03-02T15:00:00+00:00", "year": 2024},
  {"session_key": 9480, "session_name": "Race", "circuit_short_name": "Jeddah", "country_name": "Saudi Arabia", "date_start": "2024-03-09T17:00:00+00:00", "year": 2024}
]`

// DriversJSON has two Red Bull drivers and one Ferrari driver. Driver 3's
// number is sent as a string.
const DriversJSON = `[
  {"driver_number": 1, "last_name": "Verstappen", "team_name": "Red Bull Racing"},
  {"driver_number": 2, "last_name": "Perez", "team_name": "Red Bull Racing"},
  {"driver_number": "3", "last_name": "Leclerc", "team_name": "Ferrari"}
]`

// LapsJSON holds laps 2 and 3 for drivers 1, 2 and 3, with lap 3 listed
// first for driver 1 and driver 2's lap 3 untimed.
const LapsJSON = `[
  {"driver_number": 1, "lap_number": 3, "lap_duration": 96.512, "is_pit_out_lap": false},
  {"driver_number": 1, "lap_number": 2, "lap_duration": 97.284, "is_pit_out_lap": false},
  {"driver_number": 2, "lap_number": 2, "lap_duration": 98.001, "is_pit_out_lap": false},
  {"driver_number": 2, "lap_number": 3, "lap_duration": null, "is_pit_out_lap": false},
  {"driver_number": 3, "lap_number": 2, "lap_duration": 97.9, "is_pit_out_lap": false},
  {"driver_number": 3, "lap_number": 3, "lap_duration": 97.45, "is_pit_out_lap": false}
]`

// NewOpenF1Mock returns a mock client that answers the three OpenF1
// endpoints with the fixtures above.
func NewOpenF1Mock() *httputil.MockHTTPClient {
	return httputil.NewMockHTTPClient().
		Handle("/v1/sessions", http.StatusOK, SessionsJSON).
		Handle("/v1/drivers", http.StatusOK, DriversJSON).
		Handle("/v1/laps", http.StatusOK, LapsJSON)
}

// Float returns a pointer to v, for lap durations.
func Float(v float64) *float64 { return &v }

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
