package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

func TestClassifyBoundaries(t *testing.T) {
	th := Default()
	tests := []struct {
		ratio float64
		want  Tier
	}{
		{0, LowTier},
		{0.5, LowTier},
		{0.50001, MidTier},
		{0.99, MidTier},
		{1, HighTier},
		{5, HighTier},
		{5.01, PremiumTier},
		{10, PremiumTier},
		{10.5, ExoticTier},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.ratio, th), "ratio %v", tt.ratio)
	}
}

func TestComputeCountsEveryItemOnce(t *testing.T) {
	items := []models.Item{
		{Price: 0.5}, {Price: 0.7}, {Price: 2}, {Price: 8}, {Price: 50}, {Price: 0.1},
	}
	d, err := Compute(items, 1, Default())
	require.NoError(t, err)

	assert.Equal(t, 33.33, d.LowTier)
	assert.Equal(t, 16.67, d.MidTier)
	assert.Equal(t, 16.67, d.HighTier)
	assert.Equal(t, 16.67, d.PremiumTier)
	assert.Equal(t, 16.67, d.ExoticTier)
	assert.InDelta(t, 100, d.Total(), 0.1)

	counts := Counts(items, 1, Default())
	sum := 0
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, len(items), sum)
}

func TestComputeSumsNearHundred(t *testing.T) {
	var items []models.Item
	for i := 1; i <= 7; i++ {
		items = append(items, models.Item{Price: float64(i) * 1.3})
	}
	d, err := Compute(items, 2, Default())
	require.NoError(t, err)
	assert.InDelta(t, 100, d.Total(), 0.1)
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil, 1, Default())
	assert.ErrorIs(t, err, models.ErrEmptyItemSet)
}

func TestComputeZeroCasePriceFallsBackToOne(t *testing.T) {
	d, err := Compute([]models.Item{{Price: 0.4}, {Price: 20}}, 0, Default())
	require.NoError(t, err)
	assert.Equal(t, 50.0, d.LowTier)
	assert.Equal(t, 50.0, d.ExoticTier)
}

func TestCustomThresholds(t *testing.T) {
	items := []models.Item{{Price: 6}, {Price: 12}}
	d, err := Compute(items, 1, Improved())
	require.NoError(t, err)
	assert.Equal(t, 50.0, d.HighTier)
	assert.Equal(t, 50.0, d.PremiumTier)
	assert.Equal(t, 50.0, d.Get(HighTier))
}

func TestThresholdsValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, Improved().Validate())

	err := Thresholds{Low: 0.5, Mid: 0.4, High: 5, Premium: 0}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mid_tier must be greater than low_tier")
	assert.Contains(t, err.Error(), "premium_tier must be a positive number")
}

func TestWithOverrides(t *testing.T) {
	th := Default().WithOverrides(Thresholds{High: 7})
	assert.Equal(t, Thresholds{Low: 0.5, Mid: 0.99, High: 7, Premium: 10}, th)
}
