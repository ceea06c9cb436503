package generator

import (
	"fmt"
	"math"
)

// TierProportions are the fractions of ItemCount assigned to the low, mid,
// high, premium and exotic bands. The exotic band absorbs the rounding
// remainder, so its own value is informational only.
type TierProportions [5]float64

// band price ranges as multiples of the case price; the low band starts at
// MinPrice and the exotic band ends at MaxPrice
var tierBounds = [5][2]float64{
	{0, 0.5},
	{0.5, 0.99},
	{1, 5},
	{5, 10},
	{10, 0},
}

var tierNames = [5]string{"low", "mid", "high", "premium", "exotic"}

// TierCounts splits itemCount across the five bands.
func TierCounts(itemCount int, props TierProportions) ([5]int, error) {
	var counts [5]int
	assigned := 0
	for i := 0; i < 4; i++ {
		if math.IsNaN(props[i]) || props[i] < 0 {
			return counts, &InvalidRangeError{Field: "tier_" + tierNames[i], Reason: "proportion must be >= 0"}
		}
		counts[i] = int(math.Floor(props[i] * float64(itemCount)))
		assigned += counts[i]
	}
	if assigned > itemCount {
		return counts, &InvalidRangeError{Field: "tiers", Reason: "proportions add up to more than 1"}
	}
	counts[4] = itemCount - assigned
	return counts, nil
}

// tierRange returns the [lo, hi) sampling range of band i.
func tierRange(in Input, i int) (float64, float64) {
	lo := tierBounds[i][0] * in.CasePrice
	hi := tierBounds[i][1] * in.CasePrice
	if i == 0 {
		lo = in.MinPrice
	}
	if i == 4 {
		hi = in.MaxPrice
	}
	return lo, hi
}

// GenerateTiered samples prices band by band instead of the two-group split,
// then applies the same weight calibration as Generate. Policy.CheapShare is
// not used in this mode.
func GenerateTiered(in Input, props TierProportions, p Policy, src RandomSource) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	counts, err := TierCounts(in.ItemCount, props)
	if err != nil {
		return Result{}, err
	}
	if src == nil {
		src = NewParkMiller(DefaultSeed)
	}

	prices := make([]float64, 0, in.ItemCount)
	for i, n := range counts {
		if n == 0 {
			continue
		}
		lo, hi := tierRange(in, i)
		if lo >= hi {
			return Result{}, &InvalidRangeError{
				Field:  "tier_" + tierNames[i],
				Reason: fmt.Sprintf("price range [%.2f, %.2f) is empty", lo, hi),
			}
		}
		prices = appendSamples(prices, src, n, lo, hi)
	}
	return calibrate(in, prices, p), nil
}
