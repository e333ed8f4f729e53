// Package server exposes session listing, assembled series and rendered
// charts over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/banshee-data/racepace/internal/httputil"
	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/pace"
	"github.com/banshee-data/racepace/internal/render"
	"github.com/banshee-data/racepace/internal/timeutil"
	"github.com/banshee-data/racepace/internal/version"
)

// SessionLister lists a season's races.
type SessionLister interface {
	ListRaceSessions(ctx context.Context, year int) ([]openf1.Session, error)
}

// Server serves the racepace HTTP API.
type Server struct {
	sessions SessionLister
	loader   *pace.Loader
	clock    timeutil.Clock
	metrics  *Metrics
}

// NewServer returns a Server backed by sessions and loader.
func NewServer(sessions SessionLister, loader *pace.Loader, clock timeutil.Clock) *Server {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Server{sessions: sessions, loader: loader, clock: clock, metrics: NewMetrics()}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// ServeMux registers every route.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/api/sessions", s.listSessions)
	mux.HandleFunc("/api/series", s.showSeries)
	mux.HandleFunc("/chart", s.showChart)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Handler is ServeMux wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := s.ServeMux()
	return LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lrw := &loggingResponseWriter{w, http.StatusOK}
		mux.ServeHTTP(lrw, r)
		s.metrics.observeStatus(lrw.statusCode)
	}))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"status": "ok", "version": version.Version})
}

type sessionsResponse struct {
	Year     int              `json:"year"`
	Sessions []openf1.Session `json:"sessions"`
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	year := timeutil.CurrentSeason(s.clock)
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1950 {
			httputil.BadRequest(w, "Invalid 'year' parameter")
			return
		}
		year = parsed
	}

	sessions, err := s.sessions.ListRaceSessions(r.Context(), year)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	httputil.WriteJSONOK(w, sessionsResponse{Year: year, Sessions: sessions})
}

type seriesResponse struct {
	*pace.Result
	// RosterWarning explains N/A labels when driver identities were unavailable.
	RosterWarning string `json:"roster_warning,omitempty"`
}

func (s *Server) showSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	res, ok := s.load(w, r)
	if !ok {
		return
	}
	resp := seriesResponse{Result: res}
	if res.RosterErr != nil {
		resp.RosterWarning = res.RosterErr.Error()
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) showChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	res, ok := s.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, format, res.Title, res.Series); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	httputil.WriteBody(w, format.ContentType(), buf.Bytes())
}

// load parses session_key, drivers and circuit and runs the pipeline. It
// writes the error response itself and reports false on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*pace.Result, bool) {
	q := r.URL.Query()
	key, err := strconv.ParseInt(q.Get("session_key"), 10, 64)
	if err != nil || key <= 0 {
		s.metrics.observeLoad(outcomeInvalid, 0)
		httputil.BadRequest(w, "Invalid 'session_key' parameter")
		return nil, false
	}
	drivers := pace.ParseDriverNumbers(q.Get("drivers"))
	if len(drivers) == 0 {
		s.metrics.observeLoad(outcomeInvalid, 0)
		httputil.BadRequest(w, "Missing 'drivers' parameter")
		return nil, false
	}

	res, err := s.loader.Load(r.Context(), pace.Request{
		SessionKey:    key,
		DriverNumbers: drivers,
		Circuit:       q.Get("circuit"),
	})
	if err != nil {
		s.metrics.observeLoad(outcomeFor(err), 0)
		writeLoadError(w, err)
		return nil, false
	}
	outcome := outcomeOK
	if res.RosterErr != nil {
		outcome = outcomeDegraded
	}
	s.metrics.observeLoad(outcome, res.Elapsed)
	return res, true
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, openf1.ErrInvalidInput):
		return outcomeInvalid
	case pace.IsInformational(err):
		return outcomeEmpty
	default:
		return outcomeError
	}
}

// statusFor maps an openf1 error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, openf1.ErrInvalidInput):
		return http.StatusBadRequest
	case pace.IsInformational(err):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, openf1.ErrNetwork), errors.Is(err, openf1.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeLoadError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusNotFound {
		msg = "No laps found for the selected drivers"
	}
	httputil.WriteJSONError(w, status, msg)
}
