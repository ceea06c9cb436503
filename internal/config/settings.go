package config

import (
	"time"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/simulate"
)

// Settings are the resolved values the commands run with.
type Settings struct {
	Version    string
	Log        logger.Config
	Thresholds distribution.Thresholds
	Workers    int
	Source     string
	Seed       int64
	Compare    generator.CompareOptions
	Simulation simulate.Params
	Server     ServerSettings
}

type ServerSettings struct {
	Addr         string
	CacheSize    int
	CacheTTL     time.Duration
	MaxBodyBytes int64
}

// Defaults returns the settings used when no file or environment says otherwise.
func Defaults() Settings {
	return Settings{
		Log:        logger.DefaultConfig(),
		Thresholds: distribution.Default(),
		Workers:    4,
		Source:     generator.SourceParkMiller,
		Seed:       generator.DefaultSeed,
		Compare:    generator.DefaultCompareOptions(),
		Simulation: simulate.DefaultParams(),
		Server: ServerSettings{
			Addr:         ":8080",
			CacheSize:    256,
			CacheTTL:     10 * time.Minute,
			MaxBodyBytes: 8 << 20,
		},
	}
}

// NewSource builds the configured random source.
func (s Settings) NewSource() generator.RandomSource {
	return generator.NewSource(s.Source, s.Seed)
}

// Resolve validates raw and lays it over Defaults.
func Resolve(raw RawConfig) (Settings, error) {
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}
	s := Defaults()
	s.Version = raw.Version

	if raw.Log.Level != "" {
		s.Log.Level = raw.Log.Level
	}
	if raw.Log.Format != "" {
		s.Log.Format = raw.Log.Format
	}
	if raw.Log.AddSource != nil {
		s.Log.AddSource = *raw.Log.AddSource
	}

	s.Thresholds = applyThresholds(s.Thresholds, raw.Analysis.Thresholds)
	if raw.Analysis.Workers != nil {
		s.Workers = *raw.Analysis.Workers
	}

	g := raw.Generator
	if g.Source != "" {
		s.Source = g.Source
	}
	if g.Seed != nil {
		s.Seed = *g.Seed
	}
	s.Compare.Original = applyPolicy(s.Compare.Original, g.Original)
	s.Compare.Improved = applyPolicy(s.Compare.Improved, g.Improved)
	s.Compare.ImprovedThresholds = applyThresholds(s.Compare.ImprovedThresholds, g.ImprovedThresholds)
	// original tables are judged against the analysis thresholds
	s.Compare.OriginalThresholds = s.Thresholds

	if sim := raw.Simulation; sim != nil {
		if sim.Goal != "" {
			s.Simulation.Goal = simulate.TrialGoal(sim.Goal)
		}
		if sim.Trials != nil {
			s.Simulation.Trials = *sim.Trials
		}
		if sim.Openings != nil {
			s.Simulation.Openings = *sim.Openings
		}
		if sim.HitRatio != nil {
			s.Simulation.HitRatio = *sim.HitRatio
		}
		if sim.MaxOpenings != nil {
			s.Simulation.MaxOpenings = *sim.MaxOpenings
		}
	}

	if raw.Server.Addr != "" {
		s.Server.Addr = raw.Server.Addr
	}
	if raw.Server.CacheSize != nil {
		s.Server.CacheSize = *raw.Server.CacheSize
	}
	if raw.Server.CacheTTL != "" {
		// format already checked by ValidateRaw
		s.Server.CacheTTL, _ = time.ParseDuration(raw.Server.CacheTTL)
	}
	if raw.Server.MaxBodyBytes != nil {
		s.Server.MaxBodyBytes = *raw.Server.MaxBodyBytes
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the cross-field constraints that only make sense after merging.
func (s Settings) Validate() error {
	var errs []string
	if err := s.Thresholds.Validate(); err != nil {
		errs = append(errs, "analysis.thresholds: "+err.Error())
	}
	if err := s.Compare.ImprovedThresholds.Validate(); err != nil {
		errs = append(errs, "generator.improved_thresholds: "+err.Error())
	}
	if err := s.Compare.Original.Validate(); err != nil {
		errs = append(errs, "generator.original: "+err.Error())
	}
	if err := s.Compare.Improved.Validate(); err != nil {
		errs = append(errs, "generator.improved: "+err.Error())
	}
	if err := s.Simulation.Validate(); err != nil {
		errs = append(errs, "simulation: "+err.Error())
	}
	if s.Workers < 1 {
		errs = append(errs, "analysis.workers must be >= 1")
	}
	return joinErrs(errs)
}

func applyThresholds(th distribution.Thresholds, c *ThresholdsCfg) distribution.Thresholds {
	if c == nil {
		return th
	}
	if c.Low != nil {
		th.Low = *c.Low
	}
	if c.Mid != nil {
		th.Mid = *c.Mid
	}
	if c.High != nil {
		th.High = *c.High
	}
	if c.Premium != nil {
		th.Premium = *c.Premium
	}
	return th
}

func applyPolicy(p generator.Policy, c *PolicyCfg) generator.Policy {
	if c == nil {
		return p
	}
	if c.CheapShare != nil {
		p.CheapShare = *c.CheapShare
	}
	if c.AboveCaseBoost != nil {
		p.AboveCaseBoost = *c.AboveCaseBoost
	}
	if c.Iterations != nil {
		p.Iterations = *c.Iterations
	}
	if c.ExponentMin != nil {
		p.ExponentMin = *c.ExponentMin
	}
	if c.ExponentMax != nil {
		p.ExponentMax = *c.ExponentMax
	}
	return p
}
