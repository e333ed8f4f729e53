// Package pace turns one session's raw timing into colored chart series: it
// resolves driver identities, formats lap times, assigns teammate-aware
// colors and assembles per-driver series for a renderer.
package pace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/racepace/internal/monitoring"
	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/timeutil"
)

// Source is everything a load needs from the timing API.
type Source interface {
	DriverSource
	Laps(ctx context.Context, sessionKey int64, driverNumbers []string) ([]openf1.LapRecord, error)
}

// Request selects a session and the drivers to chart.
type Request struct {
	SessionKey    int64
	DriverNumbers []string
	// Circuit is only used for the chart title.
	Circuit string
}

// LoadContext is the per-load identity state. It is built fresh for every
// Load so nothing leaks from one session into the next.
type LoadContext struct {
	SessionKey int64
	Roster     Roster
	Laps       []openf1.LapRecord
	Rows       []Row
	Assignment Assignment
}

// Result is a completed load.
type Result struct {
	ID         uuid.UUID     `json:"id"`
	SessionKey int64         `json:"session_key"`
	Title      string        `json:"title"`
	Series     []ChartSeries `json:"series"`
	Assignment Assignment    `json:"colors"`
	RosterSize int           `json:"roster_size"`
	// RosterErr is set when driver identities could not be fetched and
	// every label fell back to N/A.
	RosterErr error         `json:"-"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Loader runs the acquire, normalize, color and assemble pipeline.
type Loader struct {
	src     Source
	palette Palette
	clock   timeutil.Clock
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPalette replaces the default team palette.
func WithPalette(p Palette) LoaderOption {
	return func(l *Loader) { l.palette = p }
}

// WithClock replaces the wall clock used to time loads.
func WithClock(c timeutil.Clock) LoaderOption {
	return func(l *Loader) { l.clock = c }
}

// NewLoader returns a Loader reading from src.
func NewLoader(src Source, opts ...LoaderOption) *Loader {
	l := &Loader{src: src, palette: DefaultPalette(), clock: timeutil.RealClock{}}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load fetches and assembles one session. Roster failures degrade to N/A
// labels; lap failures abort with no partial result. An ErrEmptyResult error
// means the request was fine but matched no laps; see IsInformational.
func (l *Loader) Load(ctx context.Context, req Request) (*Result, error) {
	if req.SessionKey == 0 {
		return nil, &openf1.Error{Kind: openf1.ErrInvalidInput, Op: "load", Err: errors.New("no session selected")}
	}
	numbers := openf1.CanonicalNumbers(req.DriverNumbers)
	if len(numbers) == 0 {
		return nil, &openf1.Error{Kind: openf1.ErrInvalidInput, Op: "load", Err: errors.New("no driver numbers")}
	}

	start := l.clock.Now()
	id := uuid.New()
	lc := &LoadContext{SessionKey: req.SessionKey}

	var rosterErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lc.Roster, rosterErr = ResolveRoster(gctx, l.src, req.SessionKey)
		return nil
	})
	g.Go(func() error {
		laps, err := l.src.Laps(gctx, req.SessionKey, numbers)
		lc.Laps = laps
		return err
	})
	if err := g.Wait(); err != nil {
		if IsInformational(err) {
			monitoring.Logf("load %s: session %d: no laps for drivers %v", id, req.SessionKey, numbers)
		} else {
			monitoring.Logf("load %s: session %d failed: %v", id, req.SessionKey, err)
		}
		return nil, err
	}
	if rosterErr != nil {
		monitoring.Logf("load %s: session %d: driver roster unavailable, labels degrade to %s: %v", id, req.SessionKey, UnknownLastName, rosterErr)
	}

	lc.Rows = Normalize(lc.Laps, lc.Roster)
	lc.Assignment = AssignColors(DistinctDriverNumbers(lc.Laps), lc.Roster, l.palette)
	series := Assemble(lc.Rows, lc.Assignment)

	res := &Result{
		ID:         id,
		SessionKey: req.SessionKey,
		Title:      Title(req),
		Series:     series,
		Assignment: lc.Assignment,
		RosterSize: lc.Roster.Len(),
		RosterErr:  rosterErr,
		Elapsed:    l.clock.Since(start),
	}
	monitoring.Debugf("load %s: session %d: %d laps, %d series, roster %d in %v",
		id, req.SessionKey, len(lc.Laps), len(series), res.RosterSize, res.Elapsed)
	return res, nil
}

// Title is the chart heading for a request.
func Title(req Request) string {
	if req.Circuit != "" {
		return "Race Pace Analysis: " + req.Circuit
	}
	return fmt.Sprintf("Race Pace Analysis: session %d", req.SessionKey)
}

// IsInformational reports whether err is a non-fatal outcome: the caller
// should say so and keep showing whatever it showed before.
func IsInformational(err error) bool {
	return errors.Is(err, openf1.ErrEmptyResult)
}
