// Command racepace charts lap-by-lap race pace for chosen drivers of a
// Formula 1 race, using timing data from the OpenF1 API.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/hako/durafmt"
	"github.com/sirupsen/logrus"

	"github.com/banshee-data/racepace/internal/config"
	"github.com/banshee-data/racepace/internal/fsutil"
	"github.com/banshee-data/racepace/internal/httputil"
	"github.com/banshee-data/racepace/internal/monitoring"
	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/pace"
	"github.com/banshee-data/racepace/internal/render"
	"github.com/banshee-data/racepace/internal/security"
	"github.com/banshee-data/racepace/internal/server"
	"github.com/banshee-data/racepace/internal/timeutil"
	"github.com/banshee-data/racepace/internal/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// env is everything run needs from the outside world.
type env struct {
	stdout, stderr io.Writer
	fs             fsutil.FileSystem
	clock          timeutil.Clock
	// http overrides the timeout client built from configuration.
	http httputil.HTTPClient
}

type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	year       int
	list       bool
	session    string
	drivers    string
	out        string
	outDir     string
	serve      string
	debug      bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     fsutil.OSFileSystem{},
		clock:  timeutil.RealClock{},
	}))
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("racepace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Path to a JSON configuration file")
	fs.StringVar(&o.baseURL, "base-url", "", "OpenF1 API root (overrides config)")
	fs.DurationVar(&o.timeout, "timeout", 0, "Per-request timeout (overrides config)")
	fs.IntVar(&o.year, "year", 0, "Season to list or search (default current year)")
	fs.BoolVar(&o.list, "list", false, "List the season's race sessions and exit")
	fs.StringVar(&o.session, "session", "", "Race to chart: session key or circuit short name")
	fs.StringVar(&o.session, "circuit", "", "Alias for -session")
	fs.StringVar(&o.drivers, "drivers", "", "Driver numbers to chart, e.g. \"1,16 55\"")
	fs.StringVar(&o.out, "out", "", "Output file (.html or .png), relative to -out-dir")
	fs.StringVar(&o.outDir, "out-dir", ".", "Directory charts may be written to")
	fs.StringVar(&o.serve, "serve", "", "Serve the HTTP API on this address instead, e.g. :8080")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	err := fs.Parse(args)
	return o, fs, err
}

func run(ctx context.Context, args []string, e env) int {
	o, flags, err := parseFlags(args, e.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if o.version {
		fmt.Fprintln(e.stdout, version.String())
		return exitOK
	}

	logger := newLogger(e.stderr, o.debug)
	monitoring.SetLogger(logger.Infof)
	if o.debug {
		monitoring.SetDebugLogger(logger.Debugf)
	} else {
		monitoring.SetDebugLogger(nil)
	}

	cfg := &config.Config{}
	if o.configPath != "" {
		if cfg, err = config.Load(e.fs, o.configPath); err != nil {
			logger.Errorf("load config: %v", err)
			return exitUsage
		}
	}

	client := newClient(cfg, o, e)
	loader := pace.NewLoader(client, pace.WithPalette(cfg.Palette()), pace.WithClock(e.clock))

	year := o.year
	if year == 0 {
		year = timeutil.CurrentSeason(e.clock)
	}

	switch {
	case o.serve != "":
		return serve(ctx, logger, o.serve, server.NewServer(client, loader, e.clock))
	case o.list:
		return listSessions(ctx, logger, e.stdout, client, year)
	case o.session == "" || o.drivers == "":
		fmt.Fprintln(e.stderr, "racepace: -session and -drivers are required (or use -list / -serve)")
		flags.Usage()
		return exitUsage
	default:
		return chart(ctx, logger, e, client, loader, o, year)
	}
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newClient(cfg *config.Config, o options, e env) *openf1.Client {
	timeout := cfg.GetTimeout()
	if o.timeout > 0 {
		timeout = o.timeout
	}
	hc := e.http
	if hc == nil {
		hc = httputil.NewTimeoutClient(timeout)
	}

	baseURL := cfg.GetBaseURL()
	if o.baseURL != "" {
		baseURL = o.baseURL
	}
	ua := cfg.GetUserAgent()
	if ua == "" {
		ua = version.UserAgent()
	}
	return openf1.NewClient(hc, openf1.WithBaseURL(baseURL), openf1.WithUserAgent(ua))
}

// exitCode maps a pipeline error onto the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil, pace.IsInformational(err):
		return exitOK
	case errors.Is(err, openf1.ErrInvalidInput):
		return exitUsage
	default:
		return exitFailure
	}
}

func listSessions(ctx context.Context, logger *logrus.Logger, w io.Writer, client *openf1.Client, year int) int {
	sessions, err := client.ListRaceSessions(ctx, year)
	if err != nil {
		logger.Errorf("list sessions: %v", err)
		return exitCode(err)
	}
	if len(sessions) == 0 {
		fmt.Fprintf(w, "no race sessions found for %d\n", year)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tDATE\tCIRCUIT\tCOUNTRY")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Key, s.DateStart.UTC().Format("2006-01-02"), s.CircuitShortName, s.CountryName)
	}
	_ = tw.Flush()
	return exitOK
}

// resolveSession finds the selected race in the season. A numeric
// selector that is not in the season is still used as a raw session key.
func resolveSession(ctx context.Context, client *openf1.Client, year int, selector string) (openf1.Session, error) {
	sessions, err := client.ListRaceSessions(ctx, year)
	if err != nil {
		return openf1.Session{}, err
	}
	if s, ok := openf1.FindSession(sessions, selector); ok {
		return s, nil
	}
	if key, err := strconv.ParseInt(selector, 10, 64); err == nil && key > 0 {
		return openf1.Session{Key: key}, nil
	}
	return openf1.Session{}, &openf1.Error{
		Kind: openf1.ErrInvalidInput,
		Op:   "select session",
		Err:  fmt.Errorf("no %d race matches %q", year, selector),
	}
}

func chart(ctx context.Context, logger *logrus.Logger, e env, client *openf1.Client, loader *pace.Loader, o options, year int) int {
	drivers := pace.ParseDriverNumbers(o.drivers)
	if len(drivers) == 0 {
		logger.Errorf("no driver numbers in %q", o.drivers)
		return exitUsage
	}

	session, err := resolveSession(ctx, client, year, o.session)
	if err != nil {
		logger.Errorf("%v", err)
		return exitCode(err)
	}

	target, format, err := outputPath(e.fs, o, session)
	if err != nil {
		logger.Errorf("output: %v", err)
		return exitUsage
	}

	res, err := loader.Load(ctx, pace.Request{
		SessionKey:    session.Key,
		DriverNumbers: drivers,
		Circuit:       session.CircuitShortName,
	})
	if err != nil {
		if pace.IsInformational(err) {
			fmt.Fprintf(e.stdout, "No laps found for drivers %v in session %d; nothing written.\n", drivers, session.Key)
		} else {
			logger.Errorf("%v", err)
		}
		return exitCode(err)
	}
	if res.RosterErr != nil {
		fmt.Fprintf(e.stderr, "warning: driver names unavailable, showing numbers only (%v)\n", res.RosterErr)
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, format, res.Title, res.Series); err != nil {
		logger.Errorf("%v", err)
		return exitFailure
	}
	if err := e.fs.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		logger.Errorf("write chart: %v", err)
		return exitFailure
	}

	logger.Infof("session %d: %d series loaded in %s", res.SessionKey, len(res.Series), durafmt.Parse(res.Elapsed).LimitFirstN(2))
	printSummary(e.stdout, res)
	fmt.Fprintf(e.stdout, "wrote %s\n", target)
	return exitOK
}

// outputPath picks the chart file and format, creating -out-dir and keeping
// the result inside it.
func outputPath(fsys fsutil.FileSystem, o options, session openf1.Session) (string, render.Format, error) {
	name := o.out
	if name == "" {
		circuit := session.CircuitShortName
		if circuit == "" {
			circuit = "session_" + strconv.FormatInt(session.Key, 10)
		}
		name = security.ChartFilename(circuit, render.FormatHTML.Ext())
	}
	format, err := render.FormatForPath(name)
	if err != nil {
		return "", "", err
	}

	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(o.outDir, name)
	}
	if err := fsys.MkdirAll(o.outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create %s: %w", o.outDir, err)
	}
	if err := security.ValidatePathWithinDirectory(target, o.outDir); err != nil {
		return "", "", err
	}
	return target, format, nil
}

func printSummary(w io.Writer, res *pace.Result) {
	fmt.Fprintln(w, res.Title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DRIVER\tTEAM\tCOLOR\tLAPS\tBEST\tMEAN")
	for _, s := range res.Series {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.Label, s.TeamName, s.Color, s.Stats.TimedLaps, s.Stats.BestFormatted(), s.Stats.MeanFormatted())
	}
	_ = tw.Flush()
}

func serve(ctx context.Context, logger *logrus.Logger, addr string, s *server.Server) int {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("serving racepace on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Errorf("failed to start server: %v", err)
			return exitFailure
		}
		return exitOK
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
		return exitFailure
	}
	logger.Info("HTTP server stopped")
	return exitOK
}
