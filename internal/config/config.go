package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dccapacity/dccapacity/internal/capacity"
	"github.com/dccapacity/dccapacity/internal/topology"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat    = "table"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// OutputFormats lists the accepted output.format values. The CLI maps the
// chosen one to a renderer.
var OutputFormats = []string{"table", "detailed", "json", "prometheus"}

// Config is the top-level configuration. Fields map 1:1 to config.example.yaml.
type Config struct {
	Capacity CapacityConfig `yaml:"capacity"`
	Limits   LimitsConfig   `yaml:"limits"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// CapacityConfig holds the estimator tunables.
type CapacityConfig struct {
	// MaxGroupRPS is the throughput ceiling attributable to one group.
	MaxGroupRPS float64 `yaml:"max_group_rps"`

	// UnitWeight is added per occurrence of a machine-id at a position.
	UnitWeight float64 `yaml:"unit_weight"`

	// PresenceWeight is the near-zero seed used by the presence variant.
	PresenceWeight float64 `yaml:"presence_weight"`

	// Variant is one of: detailed | presence | simple.
	Variant string `yaml:"variant"`
}

// LimitsConfig bounds accepted topologies.
type LimitsConfig struct {
	MaxGroups   int `yaml:"max_groups"`
	MaxMachines int `yaml:"max_machines"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	// Format is one of: table | detailed | json | prometheus.
	Format string `yaml:"format"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: text | json.
	Format string `yaml:"format"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values. It is what the
// CLI runs with when no config file is given.
func Default() *Config {
	p := capacity.DefaultParams()
	return &Config{
		Capacity: CapacityConfig{
			MaxGroupRPS:    p.MaxGroupRPS,
			UnitWeight:     p.UnitWeight,
			PresenceWeight: p.PresenceWeight,
			Variant:        string(p.Variant),
		},
		Limits: LimitsConfig{
			MaxGroups:   topology.DefaultMaxGroups,
			MaxMachines: topology.DefaultMaxMachines,
		},
		Output: OutputConfig{Format: DefaultFormat},
		Log:    LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Params converts the capacity and limits sections into estimator params.
// Call on a validated Config.
func (c *Config) Params() capacity.Params {
	v, _ := capacity.ParseVariant(c.Capacity.Variant)
	return capacity.Params{
		MaxGroupRPS:    c.Capacity.MaxGroupRPS,
		UnitWeight:     c.Capacity.UnitWeight,
		PresenceWeight: c.Capacity.PresenceWeight,
		Variant:        v,
		Limits:         c.Limits.Topology(),
	}
}

// Topology converts the limits section into topology.Limits.
func (l LimitsConfig) Topology() topology.Limits {
	return topology.Limits{MaxGroups: l.MaxGroups, MaxMachines: l.MaxMachines}
}

// SlogLevel maps Level to a slog.Level. Unknown values fall back to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if _, err := capacity.ParseVariant(cfg.Capacity.Variant); err != nil {
		return fmt.Errorf("capacity.variant: %w", err)
	}
	if err := cfg.Params().Validate(); err != nil {
		return fmt.Errorf("capacity: %w", err)
	}
	if cfg.Limits.MaxGroups <= 0 {
		return fmt.Errorf("limits.max_groups must be positive")
	}
	if cfg.Limits.MaxMachines <= 0 {
		return fmt.Errorf("limits.max_machines must be positive")
	}
	if !slices.Contains(OutputFormats, strings.ToLower(strings.TrimSpace(cfg.Output.Format))) {
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	return nil
}
