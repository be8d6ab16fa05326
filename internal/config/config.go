// Package config loads planboard settings from an optional YAML file and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environment variables consulted by FromEnv and Resolve.
const (
	EnvConfig     = "PLANBOARD_CONFIG"
	EnvDB         = "PLANBOARD_DB"
	EnvLogLevel   = "PLANBOARD_LOG_LEVEL"
	EnvToday      = "PLANBOARD_TODAY"
	EnvGanttWidth = "PLANBOARD_GANTT_WIDTH"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "planboard.yaml"

const dateLayout = "2006-01-02"

// Bounds for display.gantt_width and the gantt --width flag, in cells.
const (
	MinGanttWidth = 20
	MaxGanttWidth = 200
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
	Display  DisplayConfig  `yaml:"display"`
}

// NewDefaultConfig returns the settings used when nothing is configured:
// an in-memory workspace seeded with the demo data.
func NewDefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ":memory:"},
		Seed:     SeedConfig{Enabled: true},
		Log:      LogConfig{Level: "info", Format: "text"},
		Display:  DisplayConfig{GanttWidth: 60},
	}
}

func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Display.Validate(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SeedConfig controls the demo workspace loaded at startup. File overrides
// the embedded seed.
type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *LogConfig) Validate() error {
	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("text", "json")),
	)
}

type DisplayConfig struct {
	// Today freezes the Gantt clock at a YYYY-MM-DD date.
	Today      string `yaml:"today"`
	GanttWidth int    `yaml:"gantt_width"`
}

func (c *DisplayConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Today, validation.Date(dateLayout)),
		validation.Field(&c.GanttWidth, validation.Required, validation.Min(MinGanttWidth), validation.Max(MaxGanttWidth)),
	)
}

// TodayDate parses Today. ok is false when no date is configured.
func (c *DisplayConfig) TodayDate() (t time.Time, ok bool, err error) {
	if c.Today == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(dateLayout, c.Today)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing display.today %q: %w", c.Today, err)
	}
	return t, true, nil
}

// ApplyEnv overlays the PLANBOARD_* variables that are set onto c.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvToday); v != "" {
		c.Display.Today = v
	}
	if v := getenv(EnvGanttWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGanttWidth, err)
		}
		c.Display.GanttWidth = n
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the YAML file
// at path (or $PLANBOARD_CONFIG, or ./planboard.yaml when present), then
// environment overrides.
func Resolve(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	var err error
	if path != "" {
		err = Load(path, cfg)
	} else {
		err = LoadOptional(DefaultFile, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
