package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/simulate"
)

// Bounds on the work one simulate request can ask for.
const (
	MaxSimulationTrials = 100000
	MaxSimulationRolls  = 100_000_000 // trials × openings per trial
)

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	CasePrice              float64   `json:"case_price" validate:"required,gt=0"`
	TargetReturnPercentage float64   `json:"target_return_percentage" validate:"gt=0"`
	MinPrice               float64   `json:"min_price" validate:"gte=0.01,ltfield=CasePrice"`
	MaxPrice               float64   `json:"max_price" validate:"gtfield=CasePrice"`
	ItemCount              int       `json:"item_count" validate:"gte=1,lte=10000"`
	Tiered                 []float64 `json:"tiered,omitempty" validate:"omitempty,len=5,dive,gte=0,lte=1"`
	Source                 string    `json:"source,omitempty" validate:"omitempty,oneof=park_miller pcg"`
	Seed                   *int64    `json:"seed,omitempty"`
}

// GenerateResponse holds either a comparison or a single tiered run.
type GenerateResponse struct {
	Comparison *generator.Comparison `json:"comparison,omitempty"`
	Tiered     *generator.Run        `json:"tiered,omitempty"`
}

func (r GenerateRequest) withDefaults(source string, seed int64) GenerateRequest {
	if r.Source == "" {
		r.Source = source
	}
	if r.Seed == nil {
		r.Seed = &seed
	}
	return r
}

func (r GenerateRequest) input() generator.Input {
	return generator.Input{
		CasePrice:              r.CasePrice,
		TargetReturnPercentage: r.TargetReturnPercentage,
		MinPrice:               r.MinPrice,
		MaxPrice:               r.MaxPrice,
		ItemCount:              r.ItemCount,
	}
}

// cacheKey must be taken after withDefaults.
func (r GenerateRequest) cacheKey() string {
	b, _ := json.Marshal(r)
	return string(b)
}

func simulationParams(base simulate.Params, q url.Values) (simulate.Params, error) {
	p := base
	ints := []struct {
		key string
		dst *int
	}{
		{"trials", &p.Trials},
		{"openings", &p.Openings},
		{"max_openings", &p.MaxOpenings},
	}
	for _, f := range ints {
		if v := q.Get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, fmt.Errorf("%s must be an integer", f.key)
			}
			*f.dst = n
		}
	}
	if v := q.Get("hit_ratio"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.New("hit_ratio must be a number")
		}
		p.HitRatio = f
	}
	if v := q.Get("goal"); v != "" {
		p.Goal = simulate.TrialGoal(v)
	}
	if p.Trials <= 0 || p.Trials > MaxSimulationTrials {
		return p, fmt.Errorf("trials must be between 1 and %d", MaxSimulationTrials)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	if p.RollsPerTrial() > MaxSimulationRolls/p.Trials {
		return p, fmt.Errorf("trials × openings must not exceed %d", MaxSimulationRolls)
	}
	return p, nil
}
