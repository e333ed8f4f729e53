package pace

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/testutil"
	"github.com/banshee-data/racepace/internal/timeutil"
)

// slowClock advances a fixed step every time it is read.
type slowClock struct {
	*timeutil.MockClock
	step time.Duration
}

func (c slowClock) Now() time.Time {
	c.MockClock.Advance(c.step)
	return c.MockClock.Now()
}

func (c slowClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

func TestLoader_Load_TeammatesAndOrdering(t *testing.T) {
	mock := testutil.NewOpenF1Mock()
	loader := NewLoader(openf1.NewClient(mock))

	res, err := loader.Load(context.Background(), Request{
		SessionKey:    testutil.SessionKey,
		DriverNumbers: []string{"1", "2", "3"},
		Circuit:       "Sakhir",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, int64(testutil.SessionKey), res.SessionKey)
	assert.Equal(t, "Race Pace Analysis: Sakhir", res.Title)
	assert.Equal(t, 3, res.RosterSize)
	assert.NoError(t, res.RosterErr)

	require.Len(t, res.Series, 3)
	wantLabels := []string{"1 VERSTAPPEN", "2 PEREZ", "3 LECLERC"}
	wantColors := []string{"#3671C6", "#83a8dd", "#E80020"}
	for i, s := range res.Series {
		assert.Equal(t, wantLabels[i], s.Label)
		assert.Equal(t, wantColors[i], s.Color, s.Label)
		require.Len(t, s.Points, 2, s.Label)
		assert.Equal(t, 2, s.Points[0].LapNumber, s.Label)
		assert.Equal(t, 3, s.Points[1].LapNumber, s.Label)
	}

	// Driver 1's laps arrive lap 3 first and are reordered.
	assert.Equal(t, "1:37.284", res.Series[0].Points[0].Formatted)
	assert.Equal(t, "1:36.512", res.Series[0].Points[1].Formatted)
	assert.Nil(t, res.Series[1].Points[1].LapDuration)
	assert.Empty(t, res.Series[1].Points[1].Formatted)

	assert.Equal(t, []string{"/v1/drivers", "/v1/laps"}, mock.Paths())
	laps := mock.RequestsFor("/v1/laps")
	require.Len(t, laps, 1)
	assert.Equal(t, "lap_number>1&session_key=9158&is_pit_out_lap=false&driver_number=1&driver_number=2&driver_number=3",
		laps[0].URL.RawQuery)
}

func TestLoader_Load_NoLapsIsInformational(t *testing.T) {
	mock := testutil.NewOpenF1Mock().Handle("/v1/laps", http.StatusOK, `[]`)
	res, err := NewLoader(openf1.NewClient(mock)).Load(context.Background(), Request{
		SessionKey:    testutil.SessionKey,
		DriverNumbers: []string{"99"},
	})

	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, openf1.ErrEmptyResult)
	assert.True(t, IsInformational(err))
	assert.Contains(t, err.Error(), "99")
}

func TestLoader_Load_RosterFailureDegrades(t *testing.T) {
	mock := testutil.NewOpenF1Mock().Handle("/v1/drivers", http.StatusInternalServerError, `boom`)
	res, err := NewLoader(openf1.NewClient(mock)).Load(context.Background(), Request{
		SessionKey:    testutil.SessionKey,
		DriverNumbers: []string{"1", "2", "3"},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, res.RosterErr, openf1.ErrNetwork)
	assert.Equal(t, 0, res.RosterSize)
	assert.Equal(t, "Race Pace Analysis: session 9158", res.Title)

	require.Len(t, res.Series, 3)
	assert.Equal(t, "1 N/A", res.Series[0].Label)
	assert.Equal(t, UnknownTeam, res.Series[0].TeamName)
	// Every driver is on the same Unknown team now.
	assert.Equal(t, FallbackColor, res.Series[0].Color)
	assert.Equal(t, "#474747", res.Series[1].Color)
	assert.Equal(t, "#474747", res.Series[2].Color)
}

func TestLoader_Load_LapFailureAborts(t *testing.T) {
	mock := testutil.NewOpenF1Mock().HandleError("/v1/laps", errors.New("connection reset"))
	res, err := NewLoader(openf1.NewClient(mock)).Load(context.Background(), Request{
		SessionKey:    testutil.SessionKey,
		DriverNumbers: []string{"1"},
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, openf1.ErrNetwork)
	assert.False(t, IsInformational(err))
}

func TestLoader_Load_MalformedLapsAbort(t *testing.T) {
	mock := testutil.NewOpenF1Mock().Handle("/v1/laps", http.StatusOK, `{"laps":`)
	_, err := NewLoader(openf1.NewClient(mock)).Load(context.Background(), Request{
		SessionKey:    testutil.SessionKey,
		DriverNumbers: []string{"1"},
	})
	assert.ErrorIs(t, err, openf1.ErrParse)
}

func TestLoader_Load_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"no session", Request{DriverNumbers: []string{"1"}}},
		{"no drivers", Request{SessionKey: testutil.SessionKey}},
		{"blank drivers", Request{SessionKey: testutil.SessionKey, DriverNumbers: []string{" ", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewOpenF1Mock()
			res, err := NewLoader(openf1.NewClient(mock)).Load(context.Background(), tt.req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, openf1.ErrInvalidInput)
			assert.Equal(t, 0, mock.RequestCount())
		})
	}
}

func TestLoader_Load_FreshRosterPerSession(t *testing.T) {
	mock := testutil.NewOpenF1Mock()
	loader := NewLoader(openf1.NewClient(mock))
	req := Request{SessionKey: testutil.SessionKey, DriverNumbers: []string{"1", "2", "3"}}

	first, err := loader.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "1 VERSTAPPEN", first.Series[0].Label)

	// The next session's roster no longer knows driver 1.
	mock.Handle("/v1/drivers", http.StatusOK, `[{"driver_number": 2, "last_name": "Lawson", "team_name": "RB"}]`)
	req.SessionKey = 9472
	second, err := loader.Load(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "1 N/A", second.Series[0].Label)
	assert.Equal(t, "2 LAWSON", second.Series[1].Label)
	assert.Equal(t, "#6692FF", second.Series[1].Color)
	assert.Equal(t, 1, second.RosterSize)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLoader_Load_CustomPaletteAndClock(t *testing.T) {
	clock := slowClock{MockClock: timeutil.NewMockClock(time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)), step: 250 * time.Millisecond}
	palette := NewPalette(map[string]string{"Ferrari": "#dc0000"}, "", 0)
	loader := NewLoader(openf1.NewClient(testutil.NewOpenF1Mock()), WithPalette(palette), WithClock(clock))

	res, err := loader.Load(context.Background(), Request{SessionKey: testutil.SessionKey, DriverNumbers: []string{"3"}})
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, res.Elapsed)

	c, ok := res.Assignment.ColorOf("3 LECLERC")
	assert.True(t, ok)
	assert.Equal(t, "#dc0000", c)
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := testutil.NewOpenF1Mock()
	mock.DoFunc = func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	}
	_, err := NewLoader(openf1.NewClient(mock)).Load(ctx, Request{SessionKey: testutil.SessionKey, DriverNumbers: []string{"1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Race Pace Analysis: Monza", Title(Request{SessionKey: 1, Circuit: "Monza"}))
	assert.Equal(t, "Race Pace Analysis: session 42", Title(Request{SessionKey: 42}))
}
