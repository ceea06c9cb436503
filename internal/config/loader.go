package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g. ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}

func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the files a profile is built from, in merge order.
func (l *Loader) Paths(profile string) []string {
	paths := []string{l.paths.DefaultPath()}
	if profile != "" {
		paths = append(paths, l.paths.ProfilePath(profile))
	}
	return paths
}

// LoadMerged loads and merges default → profile (profile optional).
// Missing files are treated as empty.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[""] = defCfg
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load merges, validates and resolves a profile into Settings.
func (l *Loader) Load(profile string) (Settings, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw)
}

// Invalidate clears loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// LoadFile reads a single YAML file and resolves it over the defaults.
func LoadFile(path string) (Settings, error) {
	raw, err := readYAML(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Resolve(raw)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where set.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// log
	if b.Log.Level != "" {
		out.Log.Level = b.Log.Level
	}
	if b.Log.Format != "" {
		out.Log.Format = b.Log.Format
	}
	if b.Log.AddSource != nil {
		out.Log.AddSource = b.Log.AddSource
	}

	// analysis
	out.Analysis.Thresholds = mergeThresholds(a.Analysis.Thresholds, b.Analysis.Thresholds)
	if b.Analysis.Workers != nil {
		out.Analysis.Workers = b.Analysis.Workers
	}

	// generator
	if b.Generator.Source != "" {
		out.Generator.Source = b.Generator.Source
	}
	if b.Generator.Seed != nil {
		out.Generator.Seed = b.Generator.Seed
	}
	out.Generator.Original = mergePolicy(a.Generator.Original, b.Generator.Original)
	out.Generator.Improved = mergePolicy(a.Generator.Improved, b.Generator.Improved)
	out.Generator.ImprovedThresholds = mergeThresholds(a.Generator.ImprovedThresholds, b.Generator.ImprovedThresholds)

	// simulation
	switch {
	case out.Simulation == nil && b.Simulation != nil:
		c := *b.Simulation
		out.Simulation = &c
	case out.Simulation != nil && b.Simulation != nil:
		c := *out.Simulation
		if b.Simulation.Goal != "" {
			c.Goal = b.Simulation.Goal
		}
		if b.Simulation.Trials != nil {
			c.Trials = b.Simulation.Trials
		}
		if b.Simulation.Openings != nil {
			c.Openings = b.Simulation.Openings
		}
		if b.Simulation.HitRatio != nil {
			c.HitRatio = b.Simulation.HitRatio
		}
		if b.Simulation.MaxOpenings != nil {
			c.MaxOpenings = b.Simulation.MaxOpenings
		}
		out.Simulation = &c
	}

	// server
	if b.Server.Addr != "" {
		out.Server.Addr = b.Server.Addr
	}
	if b.Server.CacheSize != nil {
		out.Server.CacheSize = b.Server.CacheSize
	}
	if b.Server.CacheTTL != "" {
		out.Server.CacheTTL = b.Server.CacheTTL
	}
	if b.Server.MaxBodyBytes != nil {
		out.Server.MaxBodyBytes = b.Server.MaxBodyBytes
	}

	return out
}

func mergeThresholds(a, b *ThresholdsCfg) *ThresholdsCfg {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	if b.Low != nil {
		c.Low = b.Low
	}
	if b.Mid != nil {
		c.Mid = b.Mid
	}
	if b.High != nil {
		c.High = b.High
	}
	if b.Premium != nil {
		c.Premium = b.Premium
	}
	return &c
}

func mergePolicy(a, b *PolicyCfg) *PolicyCfg {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	if b.CheapShare != nil {
		c.CheapShare = b.CheapShare
	}
	if b.AboveCaseBoost != nil {
		c.AboveCaseBoost = b.AboveCaseBoost
	}
	if b.Iterations != nil {
		c.Iterations = b.Iterations
	}
	if b.ExponentMin != nil {
		c.ExponentMin = b.ExponentMin
	}
	if b.ExponentMax != nil {
		c.ExponentMax = b.ExponentMax
	}
	return &c
}
