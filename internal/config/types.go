package config

// RawConfig is loaded from YAML. Pointer fields distinguish "unset" from zero
// so a profile can override only what it names.
type RawConfig struct {
	Version    string          `yaml:"version"`
	Log        LogCfg          `yaml:"log"`
	Analysis   AnalysisCfg     `yaml:"analysis"`
	Generator  GeneratorCfg    `yaml:"generator"`
	Simulation *SimulationCfg  `yaml:"simulation,omitempty"`
	Server     ServerCfg       `yaml:"server"`
	Notes      string          `yaml:"notes,omitempty"`
}

type LogCfg struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource *bool  `yaml:"add_source,omitempty"`
}

type AnalysisCfg struct {
	Thresholds *ThresholdsCfg `yaml:"thresholds,omitempty"`
	Workers    *int           `yaml:"workers,omitempty"`
}

type ThresholdsCfg struct {
	Low     *float64 `yaml:"low_tier,omitempty"`
	Mid     *float64 `yaml:"mid_tier,omitempty"`
	High    *float64 `yaml:"high_tier,omitempty"`
	Premium *float64 `yaml:"premium_tier,omitempty"`
}

type GeneratorCfg struct {
	Source             string         `yaml:"source"` // "park_miller" | "pcg"
	Seed               *int64         `yaml:"seed,omitempty"`
	Original           *PolicyCfg     `yaml:"original,omitempty"`
	Improved           *PolicyCfg     `yaml:"improved,omitempty"`
	ImprovedThresholds *ThresholdsCfg `yaml:"improved_thresholds,omitempty"`
}

type PolicyCfg struct {
	CheapShare     *float64 `yaml:"cheap_share,omitempty"`
	AboveCaseBoost *float64 `yaml:"above_case_boost,omitempty"`
	Iterations     *int     `yaml:"iterations,omitempty"`
	ExponentMin    *float64 `yaml:"exponent_min,omitempty"`
	ExponentMax    *float64 `yaml:"exponent_max,omitempty"`
}

type SimulationCfg struct {
	Goal        string   `yaml:"goal"` // "fixed_budget" | "first_hit"
	Trials      *int     `yaml:"trials,omitempty"`
	Openings    *int     `yaml:"openings,omitempty"`
	HitRatio    *float64 `yaml:"hit_ratio,omitempty"`
	MaxOpenings *int     `yaml:"max_openings,omitempty"`
}

type ServerCfg struct {
	Addr         string `yaml:"addr"`
	CacheSize    *int   `yaml:"cache_size,omitempty"`
	CacheTTL     string `yaml:"cache_ttl"` // Go duration, e.g. "10m"
	MaxBodyBytes *int64 `yaml:"max_body_bytes,omitempty"`
}
