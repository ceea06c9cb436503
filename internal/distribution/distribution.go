package distribution

import (
	"github.com/shopspring/decimal"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

// Tier is a price band relative to the case price.
type Tier string

const (
	LowTier     Tier = "lowTier"
	MidTier     Tier = "midTier"
	HighTier    Tier = "highTier"
	PremiumTier Tier = "premiumTier"
	ExoticTier  Tier = "exoticTier"
)

// Tiers lists all tiers from cheapest to most expensive.
func Tiers() []Tier {
	return []Tier{LowTier, MidTier, HighTier, PremiumTier, ExoticTier}
}

// Distribution holds the share of items per tier, in percent (0..100).
type Distribution struct {
	LowTier     float64 `json:"lowTier"`
	MidTier     float64 `json:"midTier"`
	HighTier    float64 `json:"highTier"`
	PremiumTier float64 `json:"premiumTier"`
	ExoticTier  float64 `json:"exoticTier"`
}

// Get returns the percentage for one tier.
func (d Distribution) Get(t Tier) float64 {
	switch t {
	case LowTier:
		return d.LowTier
	case MidTier:
		return d.MidTier
	case HighTier:
		return d.HighTier
	case PremiumTier:
		return d.PremiumTier
	case ExoticTier:
		return d.ExoticTier
	}
	return 0
}

// Total sums all tiers. Independent rounding can leave it slightly off 100.
func (d Distribution) Total() float64 {
	return d.LowTier + d.MidTier + d.HighTier + d.PremiumTier + d.ExoticTier
}

// Classify maps a price ratio to its tier. Upper bounds are inclusive and the
// first matching tier wins.
func Classify(ratio float64, th Thresholds) Tier {
	switch {
	case ratio <= th.Low:
		return LowTier
	case ratio <= th.Mid:
		return MidTier
	case ratio <= th.High:
		return HighTier
	case ratio <= th.Premium:
		return PremiumTier
	default:
		return ExoticTier
	}
}

// Counts returns how many items fall in each tier.
func Counts(items []models.Item, casePrice float64, th Thresholds) map[Tier]int {
	price := models.EffectivePrice(casePrice)
	counts := make(map[Tier]int, 5)
	for _, it := range items {
		counts[Classify(it.Price/price, th)]++
	}
	return counts
}

// Compute buckets items into tiers and returns per-tier percentages of the
// item count, each rounded to two decimals on its own.
func Compute(items []models.Item, casePrice float64, th Thresholds) (Distribution, error) {
	if len(items) == 0 {
		return Distribution{}, models.ErrEmptyItemSet
	}
	counts := Counts(items, casePrice, th)
	total := float64(len(items))
	pct := func(t Tier) float64 {
		return round2(float64(counts[t]) / total * 100)
	}
	return Distribution{
		LowTier:     pct(LowTier),
		MidTier:     pct(MidTier),
		HighTier:    pct(HighTier),
		PremiumTier: pct(PremiumTier),
		ExoticTier:  pct(ExoticTier),
	}, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
