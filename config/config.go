// Package config loads solver, server and logging settings from YAML.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/linprog/graphical"
	"q.log/linprog/simplex"
)

// Config is the top-level configuration file.
//
//	server:
//	  addr: ":8080"
//	log:
//	  level: info
//	simplex:
//	  big_m: 1e6
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Simplex   SimplexConfig   `yaml:"simplex"`
	Graphical GraphicalConfig `yaml:"graphical"`
}

// ServerConfig contains HTTP settings.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SimplexConfig mirrors the simplex options. MaxIterations 0 means
// 200 * (m + n).
type SimplexConfig struct {
	OptimalityTol  float64 `yaml:"optimality_tol"`
	FeasibilityTol float64 `yaml:"feasibility_tol"`
	BigM           float64 `yaml:"big_m"`
	MaxIterations  int     `yaml:"max_iterations"`
}

// GraphicalConfig mirrors the graphical solver options.
type GraphicalConfig struct {
	ParallelTol       float64 `yaml:"parallel_tol"`
	FeasibleTol       float64 `yaml:"feasible_tol"`
	DedupTol          float64 `yaml:"dedup_tol"`
	UnboundedDistance float64 `yaml:"unbounded_distance"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Simplex: SimplexConfig{
			OptimalityTol:  simplex.DefaultOptimalityTol,
			FeasibilityTol: simplex.DefaultFeasibilityTol,
			BigM:           simplex.DefaultBigM,
		},
		Graphical: GraphicalConfig{
			ParallelTol:       graphical.DefaultParallelTol,
			FeasibleTol:       graphical.DefaultFeasibleTol,
			DedupTol:          graphical.DefaultDedupTol,
			UnboundedDistance: graphical.DefaultUnboundedDistance,
		},
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects non-positive tolerances and unknown log settings.
func (c Config) Validate() error {
	positive := map[string]float64{
		"simplex.optimality_tol":       c.Simplex.OptimalityTol,
		"simplex.feasibility_tol":      c.Simplex.FeasibilityTol,
		"simplex.big_m":                c.Simplex.BigM,
		"graphical.parallel_tol":       c.Graphical.ParallelTol,
		"graphical.feasible_tol":       c.Graphical.FeasibleTol,
		"graphical.dedup_tol":          c.Graphical.DedupTol,
		"graphical.unbounded_distance": c.Graphical.UnboundedDistance,
	}
	for name, v := range positive {
		if v <= 0 {
			return errors.Errorf("%s must be positive, got %g", name, v)
		}
	}
	if c.Simplex.MaxIterations < 0 {
		return errors.Errorf("simplex.max_iterations must not be negative, got %d", c.Simplex.MaxIterations)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SimplexOptions converts the simplex section into solver options.
func (c Config) SimplexOptions() []simplex.Option {
	return []simplex.Option{
		simplex.WithTolerance(c.Simplex.OptimalityTol),
		simplex.WithFeasibilityTolerance(c.Simplex.FeasibilityTol),
		simplex.WithBigM(c.Simplex.BigM),
		simplex.WithMaxIterations(c.Simplex.MaxIterations),
	}
}

// GraphicalOptions converts the graphical section into solver options.
func (c Config) GraphicalOptions() []graphical.Option {
	return []graphical.Option{
		graphical.WithParallelTolerance(c.Graphical.ParallelTol),
		graphical.WithFeasibleTolerance(c.Graphical.FeasibleTol),
		graphical.WithDedupTolerance(c.Graphical.DedupTol),
		graphical.WithUnboundedDistance(c.Graphical.UnboundedDistance),
	}
}

// SlogLevel parses Log.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("log.level must be debug, info, warn or error, got %q", l.Level)
}

// NewLogger builds the slog logger described by l.
func (l LogConfig) NewLogger() *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(l.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
