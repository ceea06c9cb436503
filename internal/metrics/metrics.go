package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

// ExpectedValue is the raw sum of probability * price. Probabilities are not
// renormalized, so tables whose chances do not add up to 1 are taken as-is.
func ExpectedValue(items []models.Item) float64 {
	var ev float64
	for _, it := range items {
		ev += it.Probability * it.Price
	}
	return ev
}

// ReturnPercentage is the expected value as a percentage of the case price.
// A zero case price is treated as 1, so the result is always finite.
func ReturnPercentage(items []models.Item, casePrice float64) float64 {
	return ExpectedValue(items) / models.EffectivePrice(casePrice) * 100
}

func prices(items []models.Item) []float64 {
	ps := make([]float64, len(items))
	for i, it := range items {
		ps[i] = it.Price
	}
	return ps
}

// MinPrice returns the cheapest reward.
func MinPrice(items []models.Item) (float64, error) {
	if len(items) == 0 {
		return 0, models.ErrEmptyItemSet
	}
	return floats.Min(prices(items)), nil
}

// MaxPrice returns the most valuable reward.
func MaxPrice(items []models.Item) (float64, error) {
	if len(items) == 0 {
		return 0, models.ErrEmptyItemSet
	}
	return floats.Max(prices(items)), nil
}

// MaxLootToPriceRatio divides the most valuable reward by the case price.
func MaxLootToPriceRatio(items []models.Item, casePrice float64) (float64, error) {
	maxPrice, err := MaxPrice(items)
	if err != nil {
		return 0, err
	}
	return maxPrice / models.EffectivePrice(casePrice), nil
}
