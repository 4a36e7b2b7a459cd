package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Session   SessionConfig   `toml:"session"`
	Index     IndexConfig     `toml:"index"`
	Scenario  ScenarioConfig  `toml:"scenario"`
	Scripting ScriptingConfig `toml:"scripting"`
	Honors    HonorsConfig    `toml:"honors"`
	Logging   LoggingConfig   `toml:"logging"`
	Profile   ProfileConfig   `toml:"profile"`
}

type SessionConfig struct {
	Name     string        `toml:"name"`
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until signalled
}

type IndexConfig struct {
	Capacity       int  `toml:"capacity"`         // initial entity table size
	CheckEveryTick bool `toml:"check_every_tick"` // run the partition check in ReportSystem
	ReportInterval int  `toml:"report_interval"`  // ticks between family reports
}

type ScenarioConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type HonorsConfig struct {
	Threshold float64 `toml:"threshold"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "block", "mutex", "trace"
	Dir  string `toml:"dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Session.TickRate <= 0 {
		errs = multierr.Append(errs, errors.New("session.tick_rate must be positive"))
	}
	if c.Session.MaxTicks < 0 {
		errs = multierr.Append(errs, errors.New("session.max_ticks must not be negative"))
	}
	if c.Index.Capacity < 0 {
		errs = multierr.Append(errs, errors.New("index.capacity must not be negative"))
	}
	if c.Index.ReportInterval <= 0 {
		errs = multierr.Append(errs, errors.New("index.report_interval must be positive"))
	}
	if c.Scripting.Enabled && c.Scripting.Dir == "" {
		errs = multierr.Append(errs, errors.New("scripting.dir is required when scripting is enabled"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.format %q: want json or console", c.Logging.Format))
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "block", "mutex", "trace":
	default:
		errs = multierr.Append(errs, fmt.Errorf("profile.mode %q: unsupported", c.Profile.Mode))
	}
	return errs
}

func Defaults() *Config {
	return &Config{
		Session: SessionConfig{
			Name:     "famecs",
			TickRate: 200 * time.Millisecond,
		},
		Index: IndexConfig{
			Capacity:       1024,
			ReportInterval: 10,
		},
		Scenario: ScenarioConfig{
			Path: "scenarios/school.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Honors: HonorsConfig{
			Threshold: 85,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Dir: ".",
		},
	}
}
