package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/simulate"
)

// ValidateRaw checks field-level constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// log
	switch strings.ToLower(cfg.Log.Level) {
	case "", logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelWarning, logger.LevelError:
	default:
		errs = append(errs, "log.level must be one of: debug, info, warn, error")
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, "log.format must be one of: json, text")
	}

	// analysis
	errs = append(errs, thresholdErrs("analysis.thresholds", cfg.Analysis.Thresholds)...)
	if cfg.Analysis.Workers != nil && *cfg.Analysis.Workers < 1 {
		errs = append(errs, "analysis.workers must be >= 1")
	}

	// generator
	switch cfg.Generator.Source {
	case "", generator.SourceParkMiller, generator.SourcePCG:
	default:
		errs = append(errs, "generator.source must be one of: park_miller, pcg")
	}
	errs = append(errs, policyErrs("generator.original", cfg.Generator.Original)...)
	errs = append(errs, policyErrs("generator.improved", cfg.Generator.Improved)...)
	errs = append(errs, thresholdErrs("generator.improved_thresholds", cfg.Generator.ImprovedThresholds)...)

	// simulation
	if sim := cfg.Simulation; sim != nil {
		switch simulate.TrialGoal(sim.Goal) {
		case "", simulate.GoalFixedBudget, simulate.GoalFirstHit:
		default:
			errs = append(errs, "simulation.goal must be one of: fixed_budget, first_hit")
		}
		if sim.Trials != nil && *sim.Trials < 0 {
			errs = append(errs, "simulation.trials must be >= 0")
		}
		if sim.Openings != nil && *sim.Openings < 1 {
			errs = append(errs, "simulation.openings must be >= 1")
		}
		if sim.HitRatio != nil && *sim.HitRatio <= 0 {
			errs = append(errs, "simulation.hit_ratio must be > 0")
		}
		if sim.MaxOpenings != nil && *sim.MaxOpenings < 1 {
			errs = append(errs, "simulation.max_openings must be >= 1")
		}
	}

	// server
	if cfg.Server.CacheSize != nil && *cfg.Server.CacheSize < 1 {
		errs = append(errs, "server.cache_size must be >= 1")
	}
	if cfg.Server.CacheTTL != "" {
		if d, err := time.ParseDuration(cfg.Server.CacheTTL); err != nil || d <= 0 {
			errs = append(errs, "server.cache_ttl must be a positive duration such as 10m")
		}
	}
	if cfg.Server.MaxBodyBytes != nil && *cfg.Server.MaxBodyBytes < 1 {
		errs = append(errs, "server.max_body_bytes must be >= 1")
	}

	return joinErrs(errs)
}

func thresholdErrs(path string, th *ThresholdsCfg) []string {
	if th == nil {
		return nil
	}
	var errs []string
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"low_tier", th.Low},
		{"mid_tier", th.Mid},
		{"high_tier", th.High},
		{"premium_tier", th.Premium},
	} {
		if f.v != nil && !(*f.v > 0) {
			errs = append(errs, fmt.Sprintf("%s.%s must be > 0", path, f.name))
		}
	}
	return errs
}

func policyErrs(path string, p *PolicyCfg) []string {
	if p == nil {
		return nil
	}
	var errs []string
	if p.CheapShare != nil && (*p.CheapShare < 0 || *p.CheapShare > 1) {
		errs = append(errs, path+".cheap_share must be in [0,1]")
	}
	if p.AboveCaseBoost != nil && *p.AboveCaseBoost <= 0 {
		errs = append(errs, path+".above_case_boost must be > 0")
	}
	if p.Iterations != nil && *p.Iterations < 1 {
		errs = append(errs, path+".iterations must be >= 1")
	}
	return errs
}

func joinErrs(errs []string) error {
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
