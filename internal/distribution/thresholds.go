package distribution

import (
	"fmt"
	"math"
	"strings"
)

// Thresholds are the upper bounds (item price / case price) of the first four tiers.
// Anything above Premium is exotic.
type Thresholds struct {
	Low     float64 `yaml:"low_tier" json:"low_tier"`
	Mid     float64 `yaml:"mid_tier" json:"mid_tier"`
	High    float64 `yaml:"high_tier" json:"high_tier"`
	Premium float64 `yaml:"premium_tier" json:"premium_tier"`
}

// Default returns the boundaries used for real case analysis.
func Default() Thresholds {
	return Thresholds{Low: 0.5, Mid: 0.99, High: 5, Premium: 10}
}

// Improved returns the wider high/premium boundaries used to judge
// tables produced with the improved generator policy.
func Improved() Thresholds {
	return Thresholds{Low: 0.5, Mid: 0.99, High: 7, Premium: 15}
}

// Validate checks that boundaries are positive, finite and strictly ascending.
func (t Thresholds) Validate() error {
	var errs []string
	bounds := []struct {
		name string
		v    float64
	}{
		{"low_tier", t.Low},
		{"mid_tier", t.Mid},
		{"high_tier", t.High},
		{"premium_tier", t.Premium},
	}
	for i, b := range bounds {
		if math.IsNaN(b.v) || math.IsInf(b.v, 0) || b.v <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive number", b.name))
			continue
		}
		if i > 0 && b.v <= bounds[i-1].v {
			errs = append(errs, fmt.Sprintf("%s must be greater than %s", b.name, bounds[i-1].name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid thresholds: %s", strings.Join(errs, "; "))
	}
	return nil
}

// WithOverrides returns a copy where every non-zero field of o replaces the receiver's.
func (t Thresholds) WithOverrides(o Thresholds) Thresholds {
	out := t
	if o.Low != 0 {
		out.Low = o.Low
	}
	if o.Mid != 0 {
		out.Mid = o.Mid
	}
	if o.High != 0 {
		out.High = o.High
	}
	if o.Premium != 0 {
		out.Premium = o.Premium
	}
	return out
}
