package generator

import (
	"fmt"
	"math"
	"strings"
)

// Policy tunes price sampling and weight calibration.
type Policy struct {
	// CheapShare is the fraction of items sampled below the case price (floored).
	CheapShare float64 `yaml:"cheap_share" json:"cheap_share"`
	// AboveCaseBoost multiplies the weight of items priced above the case price.
	AboveCaseBoost float64 `yaml:"above_case_boost" json:"above_case_boost"`
	Iterations     int     `yaml:"iterations" json:"iterations"`
	ExponentMin    float64 `yaml:"exponent_min" json:"exponent_min"`
	ExponentMax    float64 `yaml:"exponent_max" json:"exponent_max"`
}

// OriginalPolicy splits items 50/50 around the case price with plain power-law weights.
func OriginalPolicy() Policy {
	return Policy{
		CheapShare:     0.5,
		AboveCaseBoost: 1,
		Iterations:     100,
		ExponentMin:    -10,
		ExponentMax:    10,
	}
}

// ImprovedPolicy samples 40/60 and boosts items above the case price by 1.5x.
func ImprovedPolicy() Policy {
	p := OriginalPolicy()
	p.CheapShare = 0.4
	p.AboveCaseBoost = 1.5
	return p
}

// Validate checks the policy; zero values are not filled in here.
func (p Policy) Validate() error {
	var errs []string
	if math.IsNaN(p.CheapShare) || p.CheapShare < 0 || p.CheapShare > 1 {
		errs = append(errs, "cheap_share must be in [0,1]")
	}
	if math.IsNaN(p.AboveCaseBoost) || math.IsInf(p.AboveCaseBoost, 0) || p.AboveCaseBoost <= 0 {
		errs = append(errs, "above_case_boost must be > 0")
	}
	if p.Iterations < 1 {
		errs = append(errs, "iterations must be >= 1")
	}
	if !(p.ExponentMin < p.ExponentMax) {
		errs = append(errs, "exponent_min must be below exponent_max")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid generator policy: %s", strings.Join(errs, "; "))
	}
	return nil
}
