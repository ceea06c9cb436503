package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

func uniform(prices ...float64) []models.Item {
	items := make([]models.Item, len(prices))
	for i, p := range prices {
		items[i] = models.Item{Price: p, Probability: 1 / float64(len(prices))}
	}
	return items
}

func TestExpectedValueIsWeightedMean(t *testing.T) {
	items := uniform(1, 2, 3, 10)
	assert.InDelta(t, 4.0, ExpectedValue(items), 1e-12)
}

func TestExpectedValueDoesNotRenormalize(t *testing.T) {
	items := []models.Item{{Price: 10, Probability: 0.5}, {Price: 2, Probability: 0.7}}
	assert.InDelta(t, 6.4, ExpectedValue(items), 1e-12)
}

func TestReturnPercentage(t *testing.T) {
	items := uniform(1, 2, 3, 10)
	for _, price := range []float64{0.5, 1, 4, 17.25} {
		assert.InDelta(t, 100*ExpectedValue(items)/price, ReturnPercentage(items, price), 1e-9)
	}
}

func TestReturnPercentageZeroPrice(t *testing.T) {
	items := uniform(1, 3)
	got := ReturnPercentage(items, 0)
	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
	assert.InDelta(t, 200.0, got, 1e-9)
}

func TestMaxLootToPriceRatio(t *testing.T) {
	ratio, err := MaxLootToPriceRatio(uniform(1, 250, 3), 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, ratio, 1e-12)

	_, err = MaxLootToPriceRatio(nil, 1)
	assert.ErrorIs(t, err, models.ErrEmptyItemSet)
}

func TestMinMaxPrice(t *testing.T) {
	items := uniform(4, 0.2, 9)
	lo, err := MinPrice(items)
	require.NoError(t, err)
	hi, err := MaxPrice(items)
	require.NoError(t, err)
	assert.Equal(t, 0.2, lo)
	assert.Equal(t, 9.0, hi)

	_, err = MinPrice(nil)
	assert.ErrorIs(t, err, models.ErrEmptyItemSet)
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		ratio float64
		want  RiskType
	}{
		{0.5, RiskMinimal},
		{10, RiskMinimal},
		{10.0001, RiskModerate},
		{50, RiskModerate},
		{100, RiskBalanced},
		{150, RiskElevated},
		{200, RiskElevated},
		{200.01, RiskSignificant},
		{500, RiskSignificant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRisk(tt.ratio), "ratio %v", tt.ratio)
	}
}

func TestSummarize(t *testing.T) {
	c := models.Case{
		Site:  "g4skins",
		Name:  "Starter",
		Price: 2,
		Items: []models.Item{
			{Price: 100, Probability: 0.01},
			{Price: 3, Probability: 0.19},
			{Price: 0.5, Probability: 0.8},
		},
	}
	s, err := Summarize(c, distribution.Default())
	require.NoError(t, err)

	assert.Equal(t, 3, s.ItemCount)
	assert.InDelta(t, 1.0, s.TotalProbability, 1e-12)
	assert.InDelta(t, 1.97, s.ExpectedValue, 1e-12)
	assert.InDelta(t, 98.5, s.ReturnPercentage, 1e-9)
	assert.Equal(t, 0.5, s.MinPrice)
	assert.Equal(t, 100.0, s.MaxPrice)
	assert.Equal(t, 50.0, s.MaxLootToPriceRatio)
	assert.Equal(t, RiskModerate, s.RiskType)
	assert.Equal(t, 33.33, s.Distribution.LowTier)
	assert.Equal(t, 33.33, s.Distribution.HighTier)
	assert.Equal(t, 33.33, s.Distribution.ExoticTier)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(models.Case{Name: "empty", Price: 1}, distribution.Default())
	assert.ErrorIs(t, err, models.ErrEmptyItemSet)
}
