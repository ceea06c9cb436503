package simulate

import (
	"errors"
	"math"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

var ErrInvalidProb = errors.New("invalid item probability; must be 0..1")

// Open rolls one case opening and returns the dropped item.
// Probabilities are used as published: when they sum below 1 the remainder
// drops nothing (ok == false), when they sum above 1 the roll is scaled to
// the total.
func Open(items []models.Item, src generator.RandomSource) (models.Item, bool, error) {
	if len(items) == 0 {
		return models.Item{}, false, models.ErrEmptyItemSet
	}
	total := 0.0
	for _, it := range items {
		if err := validateProb(it.Probability); err != nil {
			return models.Item{}, false, err
		}
		total += it.Probability
	}
	if src == nil {
		src = generator.NewParkMiller(generator.DefaultSeed)
	}

	u := src.Float64() * math.Max(total, 1)
	acc := 0.0
	for _, it := range items {
		acc += it.Probability
		if u < acc {
			return it, true, nil
		}
	}
	return models.Item{}, false, nil
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}
