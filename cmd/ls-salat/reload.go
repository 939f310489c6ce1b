package main

import (
	"errors"
	"time"

	"github.com/litescript/ls-salat/internal/config"
	"github.com/litescript/ls-salat/internal/state"
)

var (
	errNowWithDate   = errors.New("-now always uses the current date; drop -date")
	errMonthWithDate = errors.New("-month selects its own dates; drop -date")
)

// checkModes rejects headless flag combinations where one flag would be
// silently ignored.
func checkModes(now bool, date, month string) error {
	if date == "" {
		return nil
	}
	if now {
		return errNowWithDate
	}
	if month != "" {
		return errMonthWithDate
	}
	return nil
}

// reloadConfig reads path again, applies overlay and hands the result to
// mgr. On error mgr is left unchanged.
func reloadConfig(path string, overlay func(*config.Config), mgr *state.Manager, now time.Time) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if overlay != nil {
		overlay(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	coords, _ := cfg.Coordinates()
	params, _ := cfg.Parameters()
	loc, _ := cfg.TimeZone()

	mgr.SetLocation(coords, loc)
	mgr.SetParameters(params)
	mgr.SetRefreshInterval(cfg.RefreshInterval())
	mgr.Update(now)
	return nil
}
