package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/litescript/ls-salat/internal/prayer"
)

const sampleYAML = `
location:
  name: Raleigh
  latitude: 35.775
  longitude: -78.6336
  timezone: America/New_York
calculation:
  method: north_america
  madhab: hanafi
  high_latitude_rule: seventh_of_the_night
  adjustments:
    fajr: 2
    isha: -3
display:
  clock_24h: false
  refresh_seconds: 5
log_level: debug
`

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.Coordinates(); !errors.Is(err, ErrNoLocation) {
		t.Errorf("Coordinates() err = %v, want ErrNoLocation", err)
	}

	params, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if params.Method != prayer.MuslimWorldLeague || params.Madhab != prayer.Shafi || params.HighLatitudeRule != prayer.MiddleOfTheNight {
		t.Errorf("Parameters = %+v", params)
	}

	loc, err := cfg.TimeZone()
	if err != nil || loc != time.UTC {
		t.Errorf("TimeZone() = %v, %v; want UTC", loc, err)
	}
	if cfg.RefreshInterval() != time.Second {
		t.Errorf("RefreshInterval = %v, want 1s", cfg.RefreshInterval())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	coords, err := cfg.Coordinates()
	if err != nil {
		t.Fatalf("Coordinates: %v", err)
	}
	if coords.Latitude != 35.775 || coords.Longitude != -78.6336 {
		t.Errorf("Coordinates = %+v", coords)
	}

	params, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if params.Method != prayer.NorthAmerica || params.FajrAngle != 15 {
		t.Errorf("method = %v fajr %v, want north_america 15", params.Method, params.FajrAngle)
	}
	if params.Madhab != prayer.Hanafi || params.HighLatitudeRule != prayer.SeventhOfTheNight {
		t.Errorf("madhab/rule = %v/%v", params.Madhab, params.HighLatitudeRule)
	}
	if params.Adjustments.Fajr != 2 || params.Adjustments.Isha != -3 {
		t.Errorf("Adjustments = %+v", params.Adjustments)
	}

	loc, err := cfg.TimeZone()
	if err != nil || loc.String() != "America/New_York" {
		t.Errorf("TimeZone() = %v, %v", loc, err)
	}
	if cfg.Display.Clock24h || cfg.RefreshInterval() != 5*time.Second || cfg.LogLevel != "debug" {
		t.Errorf("Display/LogLevel = %+v / %q", cfg.Display, cfg.LogLevel)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("location:\n  latitude: 21.42\n  longitude: 39.83\n  timezone: \"  \"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := DefaultConfig()
	if cfg.Calculation.Method != def.Calculation.Method {
		t.Errorf("Method = %q, want %q", cfg.Calculation.Method, def.Calculation.Method)
	}
	if cfg.Location.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Location.Timezone)
	}
	if !cfg.Display.Clock24h {
		t.Error("Clock24h default lost")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParameters_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	fajr, isha, interval := 16.0, 14.0, 75
	cfg.Calculation.Method = "other"
	cfg.Calculation.FajrAngle = &fajr
	cfg.Calculation.IshaAngle = &isha
	cfg.Calculation.IshaInterval = &interval

	params, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if params.Method != prayer.Other || params.FajrAngle != 16 || params.IshaAngle != 14 || params.IshaInterval != 75 {
		t.Errorf("Parameters = %+v", params)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"no location", func(c *Config) {}, ErrNoLocation},
		{"latitude out of range", func(c *Config) { setCoordinates(c, 95, 0) }, prayer.ErrInvalidCoordinates},
		{"unknown method", func(c *Config) {
			setCoordinates(c, 10, 10)
			c.Calculation.Method = "tehran"
		}, prayer.ErrUnknownOption},
		{"unknown madhab", func(c *Config) {
			setCoordinates(c, 10, 10)
			c.Calculation.Madhab = "maliki"
		}, prayer.ErrUnknownOption},
		{"negative fajr angle", func(c *Config) {
			setCoordinates(c, 10, 10)
			neg := -3.0
			c.Calculation.FajrAngle = &neg
		}, prayer.ErrInvalidParameters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultConfig()
	setCoordinates(&cfg, 10, 10)
	cfg.Location.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an unknown timezone")
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if cfg.Calculation.Method != DefaultConfig().Calculation.Method {
		t.Errorf("empty path did not return defaults")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "salat.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Location.Name != "Raleigh" {
		t.Errorf("Name = %q, want Raleigh", cfg.Location.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("location: [1, 2"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("malformed file err = %v", err)
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(written): %v", err)
	}
	a, _ := cfg.Parameters()
	b, _ := again.Parameters()
	if a != b {
		t.Errorf("parameters changed: %+v vs %+v", a, b)
	}
	if *again.Location.Latitude != 35.775 || again.Location.Timezone != "America/New_York" {
		t.Errorf("location changed: %+v", again.Location)
	}
}

func setCoordinates(c *Config, lat, lon float64) {
	c.Location.Latitude = &lat
	c.Location.Longitude = &lon
}
