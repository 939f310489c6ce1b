// Package config loads the location and calculation settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-salat/internal/prayer"
)

// ErrNoLocation is returned when latitude or longitude is missing.
var ErrNoLocation = errors.New("location latitude and longitude are required")

// Config is the on-disk configuration.
type Config struct {
	Location    LocationConfig    `yaml:"location"`
	Calculation CalculationConfig `yaml:"calculation"`
	Display     DisplayConfig     `yaml:"display"`
	LogLevel    string            `yaml:"log_level"`
}

// LocationConfig identifies where times are computed and shown.
type LocationConfig struct {
	Name      string   `yaml:"name"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Timezone  string   `yaml:"timezone"`
}

// CalculationConfig selects a method and optional overrides of its preset.
type CalculationConfig struct {
	Method           string             `yaml:"method"`
	Madhab           string             `yaml:"madhab"`
	HighLatitudeRule string             `yaml:"high_latitude_rule"`
	FajrAngle        *float64           `yaml:"fajr_angle,omitempty"`
	IshaAngle        *float64           `yaml:"isha_angle,omitempty"`
	IshaInterval     *int               `yaml:"isha_interval,omitempty"`
	Adjustments      prayer.Adjustments `yaml:"adjustments"`
}

// DisplayConfig controls the terminal views.
type DisplayConfig struct {
	Clock24h       bool `yaml:"clock_24h"`
	RefreshSeconds int  `yaml:"refresh_seconds"`
}

// DefaultConfig returns the configuration used when no file is given.
// It has no location.
func DefaultConfig() Config {
	return Config{
		Location: LocationConfig{Timezone: "UTC"},
		Calculation: CalculationConfig{
			Method:           prayer.MuslimWorldLeague.String(),
			Madhab:           prayer.Shafi.String(),
			HighLatitudeRule: prayer.MiddleOfTheNight.String(),
		},
		Display: DisplayConfig{
			Clock24h:       true,
			RefreshSeconds: 1,
		},
		LogLevel: "info",
	}
}

// LoadFile reads path on top of the defaults. An empty path returns the
// defaults.
func LoadFile(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultConfig(), nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bs)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	c.Location.Timezone = strings.TrimSpace(c.Location.Timezone)
	if c.Location.Timezone == "" {
		c.Location.Timezone = def.Location.Timezone
	}
	if strings.TrimSpace(c.Calculation.Method) == "" {
		c.Calculation.Method = def.Calculation.Method
	}
	if strings.TrimSpace(c.Calculation.Madhab) == "" {
		c.Calculation.Madhab = def.Calculation.Madhab
	}
	if strings.TrimSpace(c.Calculation.HighLatitudeRule) == "" {
		c.Calculation.HighLatitudeRule = def.Calculation.HighLatitudeRule
	}
	if c.Display.RefreshSeconds <= 0 {
		c.Display.RefreshSeconds = def.Display.RefreshSeconds
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
}

// Coordinates returns the validated location.
func (c Config) Coordinates() (prayer.Coordinates, error) {
	if c.Location.Latitude == nil || c.Location.Longitude == nil {
		return prayer.Coordinates{}, ErrNoLocation
	}
	return prayer.NewCoordinates(*c.Location.Latitude, *c.Location.Longitude)
}

// Parameters resolves the method preset and applies overrides.
func (c Config) Parameters() (prayer.Parameters, error) {
	method, err := prayer.ParseMethod(c.Calculation.Method)
	if err != nil {
		return prayer.Parameters{}, err
	}
	params := method.Parameters()

	if params.Madhab, err = prayer.ParseMadhab(c.Calculation.Madhab); err != nil {
		return prayer.Parameters{}, err
	}
	if params.HighLatitudeRule, err = prayer.ParseHighLatitudeRule(c.Calculation.HighLatitudeRule); err != nil {
		return prayer.Parameters{}, err
	}
	if c.Calculation.FajrAngle != nil {
		params.FajrAngle = *c.Calculation.FajrAngle
	}
	if c.Calculation.IshaAngle != nil {
		params.IshaAngle = *c.Calculation.IshaAngle
	}
	if c.Calculation.IshaInterval != nil {
		params.IshaInterval = *c.Calculation.IshaInterval
	}
	params.Adjustments = c.Calculation.Adjustments

	if err := params.Validate(); err != nil {
		return prayer.Parameters{}, err
	}
	return params, nil
}

// TimeZone loads the configured time zone.
func (c Config) TimeZone() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Location.Timezone, err)
	}
	return loc, nil
}

// RefreshInterval returns how often live views update.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Display.RefreshSeconds) * time.Second
}

// Validate checks that every setting resolves.
func (c Config) Validate() error {
	if _, err := c.Coordinates(); err != nil {
		return err
	}
	if _, err := c.Parameters(); err != nil {
		return err
	}
	if _, err := c.TimeZone(); err != nil {
		return err
	}
	return nil
}

// WriteYAML writes c as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
