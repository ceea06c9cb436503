package simulate

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Realized return percentage over a fixed number of openings.
	GoalFixedBudget TrialGoal = "fixed_budget"
	// Openings until the first drop worth at least HitRatio × case price.
	GoalFirstHit TrialGoal = "first_hit"
)

// Params describes one simulation run.
type Params struct {
	Goal     TrialGoal `json:"goal" yaml:"goal"`
	Trials   int       `json:"trials" yaml:"trials"`
	Openings int       `json:"openings" yaml:"openings"` // per trial, GoalFixedBudget
	HitRatio float64   `json:"hit_ratio" yaml:"hit_ratio"` // GoalFirstHit
	// MaxOpenings caps a GoalFirstHit trial so unreachable hits terminate.
	MaxOpenings int `json:"max_openings" yaml:"max_openings"`
}

// DefaultParams runs 1000 trials of 100 openings.
func DefaultParams() Params {
	return Params{
		Goal:        GoalFixedBudget,
		Trials:      1000,
		Openings:    100,
		HitRatio:    10,
		MaxOpenings: 100000,
	}
}

// RollsPerTrial is the most openings one trial can take.
func (p Params) RollsPerTrial() int {
	if p.Goal == GoalFirstHit {
		return p.MaxOpenings
	}
	return p.Openings
}

func (p Params) Validate() error {
	switch p.Goal {
	case GoalFixedBudget:
		if p.Openings <= 0 {
			return fmt.Errorf("openings must be >= 1 for goal=%s", p.Goal)
		}
	case GoalFirstHit:
		if p.HitRatio <= 0 {
			return fmt.Errorf("hit_ratio must be > 0 for goal=%s", p.Goal)
		}
		if p.MaxOpenings <= 0 {
			return fmt.Errorf("max_openings must be >= 1 for goal=%s", p.Goal)
		}
	default:
		return fmt.Errorf("goal must be one of: %s, %s", GoalFixedBudget, GoalFirstHit)
	}
	return nil
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"std_dev"`
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// Share of trials that ended ahead (fixed budget) or found the hit (first hit).
	SuccessRate float64 `json:"success_rate"`
}

// calcStats computes mean/variance/percentiles.
func calcStats(xs []float64, successes int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	mean, variance := stat.PopMeanVariance(xs, nil)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Mean:        mean,
		Var:         variance,
		StdDev:      math.Sqrt(variance),
		P10:         percentile(0.10),
		P50:         percentile(0.50),
		P90:         percentile(0.90),
		P99:         percentile(0.99),
		SuccessRate: float64(successes) / float64(n),
	}
}

// simulateOne returns the trial metric and whether the trial succeeded.
func simulateOne(c models.Case, p Params, src generator.RandomSource) (float64, bool, error) {
	price := models.EffectivePrice(c.Price)

	switch p.Goal {
	case GoalFirstHit:
		for n := 1; n <= p.MaxOpenings; n++ {
			it, ok, err := Open(c.Items, src)
			if err != nil {
				return 0, false, err
			}
			if ok && it.Price/price >= p.HitRatio {
				return float64(n), true, nil
			}
		}
		return float64(p.MaxOpenings), false, nil

	default:
		var value float64
		for i := 0; i < p.Openings; i++ {
			it, ok, err := Open(c.Items, src)
			if err != nil {
				return 0, false, err
			}
			if ok {
				value += it.Price
			}
		}
		spent := price * float64(p.Openings)
		return value / spent * 100, value > spent, nil
	}
}

// Run repeats trials against one case and returns summary stats.
// src is reset first so the same case and seed always give the same result.
func Run(c models.Case, p Params, src generator.RandomSource) (Stats, error) {
	return RunContext(context.Background(), c, p, src)
}

// RunContext is Run that stops between trials once ctx is done.
func RunContext(ctx context.Context, c models.Case, p Params, src generator.RandomSource) (Stats, error) {
	if len(c.Items) == 0 {
		return Stats{}, models.ErrEmptyItemSet
	}
	if err := p.Validate(); err != nil {
		return Stats{}, err
	}
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	if src == nil {
		src = generator.NewParkMiller(generator.DefaultSeed)
	}
	src.Reset()

	samples := make([]float64, p.Trials)
	successes := 0
	for i := 0; i < p.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		v, ok, err := simulateOne(c, p, src)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
		if ok {
			successes++
		}
	}
	return calcStats(samples, successes), nil
}
