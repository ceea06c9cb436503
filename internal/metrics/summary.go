package metrics

import (
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

// Summary is the derived record for one case. Values keep full precision;
// rounding is left to display and export.
type Summary struct {
	Site                string                    `json:"site"`
	Name                string                    `json:"name"`
	Price               float64                   `json:"price"`
	ItemCount           int                       `json:"item_count"`
	TotalProbability    float64                   `json:"total_probability"`
	ExpectedValue       float64                   `json:"expected_value"`
	ReturnPercentage    float64                   `json:"return_percentage"`
	MinPrice            float64                   `json:"min_price"`
	MaxPrice            float64                   `json:"max_price"`
	MaxLootToPriceRatio float64                   `json:"max_loot_to_price_ratio"`
	RiskType            RiskType                  `json:"risk_type"`
	Distribution        distribution.Distribution `json:"distribution"`
}

// Summarize computes every derived metric of a case.
func Summarize(c models.Case, th distribution.Thresholds) (Summary, error) {
	if len(c.Items) == 0 {
		return Summary{}, models.ErrEmptyItemSet
	}
	minPrice, err := MinPrice(c.Items)
	if err != nil {
		return Summary{}, err
	}
	maxPrice, err := MaxPrice(c.Items)
	if err != nil {
		return Summary{}, err
	}
	ratio := maxPrice / models.EffectivePrice(c.Price)
	dist, err := distribution.Compute(c.Items, c.Price, th)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Site:                c.Site,
		Name:                c.Name,
		Price:               c.Price,
		ItemCount:           len(c.Items),
		TotalProbability:    models.TotalProbability(c.Items),
		ExpectedValue:       ExpectedValue(c.Items),
		ReturnPercentage:    ReturnPercentage(c.Items, c.Price),
		MinPrice:            minPrice,
		MaxPrice:            maxPrice,
		MaxLootToPriceRatio: ratio,
		RiskType:            ClassifyRisk(ratio),
		Distribution:        dist,
	}, nil
}
