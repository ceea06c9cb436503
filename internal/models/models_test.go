package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 1.0, EffectivePrice(0))
	assert.Equal(t, 2.5, EffectivePrice(2.5))
}

func TestSortByPriceDesc(t *testing.T) {
	items := []Item{
		{Name: "a", Price: 1},
		{Name: "b", Price: 10},
		{Name: "c", Price: 1},
		{Name: "d", Price: 5},
	}
	SortByPriceDesc(items)

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, names)
}

func TestTotalProbabilityToleratesUnnormalizedData(t *testing.T) {
	items := []Item{{Probability: 0.6}, {Probability: 0.5}}
	assert.InDelta(t, 1.1, TotalProbability(items), 1e-12)
}
