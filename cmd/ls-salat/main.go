// Command ls-salat shows daily prayer times computed from the Sun's position.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/config"
	"github.com/litescript/ls-salat/internal/logging"
	"github.com/litescript/ls-salat/internal/prayer"
	"github.com/litescript/ls-salat/internal/report"
	"github.com/litescript/ls-salat/internal/state"
	"github.com/litescript/ls-salat/internal/ui"
	"github.com/litescript/ls-salat/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	monthArg      string
	jsonPath      string
	nowMode       bool
	dateArg       string
	watchInterval time.Duration
)

const minWatch = time.Second

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	lat := flag.Float64("lat", 0, "Latitude in degrees, north positive")
	lon := flag.Float64("lon", 0, "Longitude in degrees, east positive")
	tz := flag.String("tz", "", "IANA time zone for display (e.g. America/New_York)")
	name := flag.String("name", "", "Location name shown in the header")
	method := flag.String("method", "", "Calculation method (muslim_world_league, egyptian, karachi, umm_al_qura, gulf, moonsighting_committee, north_america, other)")
	madhab := flag.String("madhab", "", "Asr madhab (shafi, hanafi)")
	highLatRule := flag.String("high-lat-rule", "", "High latitude rule (middle_of_the_night, seventh_of_the_night, twilight_angle)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file (TUI mode discards logs otherwise)")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration as YAML and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print the day's times instead of TUI")
	flag.StringVar(&monthArg, "month", "", "Print a monthly timetable (YYYY-MM)")
	flag.StringVar(&jsonPath, "json", "", "Export JSON to file (use - for stdout)")
	flag.BoolVar(&nowMode, "now", false, "Single-line current/next prayer mode")
	flag.StringVar(&dateArg, "date", "", "Date to compute (YYYY-MM-DD, default today)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat output at interval (e.g., 30s)")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-salat", version.Version)
		return
	}

	if err := checkModes(nowMode, dateArg, monthArg); err != nil {
		fatalf("Error: %v\n", err)
	}

	// Flags given on the command line override the file, on startup and
	// on every reload.
	applyFlags := func(cfg *config.Config) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "lat":
				cfg.Location.Latitude = lat
			case "lon":
				cfg.Location.Longitude = lon
			case "tz":
				cfg.Location.Timezone = *tz
			case "name":
				cfg.Location.Name = *name
			case "method":
				cfg.Calculation.Method = *method
			case "madhab":
				cfg.Calculation.Madhab = *madhab
			case "high-lat-rule":
				cfg.Calculation.HighLatitudeRule = *highLatRule
			case "log-level":
				cfg.LogLevel = *logLevel
			}
		})
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	applyFlags(&cfg)

	if *printConfig {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			fatalf("Error: %v\n", err)
		}
		return
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatalf("Error: open log file: %v\n", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}
	log := logger.Named("main")

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoLocation) {
			fatalf("Error: %v (use -lat/-lon or -config)\n", err)
		}
		fatalf("Error: %v\n", err)
	}
	coords, _ := cfg.Coordinates()
	params, _ := cfg.Parameters()
	loc, _ := cfg.TimeZone()
	log.Debug("location %s, %s, method %s", coords, loc, params.Method)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateCfg := state.DefaultConfig(coords)
	stateCfg.Parameters = params
	stateCfg.Location = loc
	stateCfg.RefreshInterval = cfg.RefreshInterval()
	stateCfg.Logger = logger.Named("state")
	stateMgr := state.NewManager(stateCfg)

	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)
	reload := func() error {
		err := reloadConfig(*configPath, applyFlags, stateMgr, time.Now())
		if err != nil {
			log.Warn("reload: %v", err)
		} else {
			log.Info("configuration reloaded")
		}
		return err
	}

	headless := summaryMode || monthArg != "" || jsonPath != "" || nowMode || dateArg != "" ||
		!term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-hupCh:
					_ = reload()
				}
			}
		}()
		if err := runHeadless(ctx, stateMgr, logger.Named("headless")); err != nil {
			fatalf("Error: %v\n", err)
		}
		return
	}

	if *logFile == "" {
		logger.SetOutput(io.Discard)
	}

	stateMgr.Update(time.Now())
	model := ui.New(stateMgr, ui.Options{
		LocationName: cfg.Location.Name,
		Clock24h:     cfg.Display.Clock24h,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Quit()
				return
			case <-hupCh:
				if err := reload(); err != nil {
					p.Send(ui.ErrorMsg{Error: err})
					continue
				}
				p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot(), Status: "Configuration reloaded"})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		fatalf("Error running TUI: %v\n", err)
	}
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, logger *logging.Logger) error {
	var fixedDate *astro.Date
	if dateArg != "" {
		d, err := astro.ParseDate(dateArg)
		if err != nil {
			return err
		}
		fixedDate = &d
	}

	var month time.Time
	if monthArg != "" {
		var err error
		if month, err = time.Parse("2006-01", monthArg); err != nil {
			return fmt.Errorf("parse month %q: %w", monthArg, err)
		}
	}

	outputOnce := func(now time.Time) error {
		stateMgr.Update(now)
		snap := stateMgr.Snapshot()

		date := snap.Date
		if fixedDate != nil {
			date = *fixedDate
		}

		if monthArg != "" {
			if jsonPath != "" {
				export := report.ExportMonth(snap.Coordinates, month.Year(), month.Month(), snap.Parameters, snap.Location, now)
				return writeJSONTo(jsonPath, export.WriteJSON)
			}
			report.WriteMonthTable(os.Stdout, snap.Coordinates, month.Year(), month.Month(), snap.Parameters, snap.Location)
			return nil
		}

		if nowMode {
			report.WriteNow(os.Stdout, snap, nil)
			return nil
		}

		if jsonPath != "" {
			export := report.ExportDay(snap.Coordinates, date, snap.Parameters, snap.Location, now)
			if err := writeJSONTo(jsonPath, export.WriteJSON); err != nil {
				return err
			}
			if !summaryMode {
				return nil
			}
		}

		times, err := prayer.Compute(snap.Coordinates, date, snap.Parameters)
		if err != nil {
			logger.Warn("%v", err)
			return err
		}
		marker := now
		if date != snap.Date {
			marker = time.Time{}
		}
		report.WriteDayTable(os.Stdout, times, snap.Location, marker)
		return nil
	}

	if watchInterval == 0 {
		return outputOnce(time.Now())
	}
	if watchInterval < minWatch {
		watchInterval = minWatch
	}

	// Watch mode: repeat at interval
	if err := outputOnce(time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case now := <-ticker.C:
			if !nowMode {
				fmt.Println() // Blank line between outputs (except now mode)
			}
			if err := outputOnce(now); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writeJSONTo writes with write to path, or stdout when path is "-".
func writeJSONTo(path string, write func(io.Writer) error) error {
	if path == "-" {
		if err := write(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
