package generator

import (
	"math"
	"sort"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

// GeneratedItem is one synthetic reward; Chance is a percentage (0..100).
type GeneratedItem struct {
	Price  float64 `json:"price"`
	Chance float64 `json:"chance"`
}

// Result is a full synthetic table. It is recomputed from scratch on every call.
type Result struct {
	Items            []GeneratedItem `json:"items"`
	Exponent         float64         `json:"exponent"`
	TargetEV         float64         `json:"target_ev"`
	ExpectedValue    float64         `json:"expected_value"`
	ReturnPercentage float64         `json:"return_percentage"`
}

// CaseItems converts the table to canonical items (0..1 probabilities).
func (r Result) CaseItems() []models.Item {
	items := make([]models.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = models.Item{Price: it.Price, Probability: it.Chance / 100}
	}
	return items
}

// Generate samples item prices around the case price and calibrates
// power-law weights so the table's expected value hits the target RTP.
//
// Prices below the case price come from [MinPrice, CasePrice), the rest from
// [CasePrice, MaxPrice). A nil src uses a fresh Park-Miller source seeded with
// DefaultSeed.
func Generate(in Input, p Policy, src RandomSource) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if src == nil {
		src = NewParkMiller(DefaultSeed)
	}

	cheap := int(math.Floor(float64(in.ItemCount) * p.CheapShare))
	expensive := in.ItemCount - cheap

	prices := make([]float64, 0, in.ItemCount)
	prices = appendSamples(prices, src, cheap, in.MinPrice, in.CasePrice)
	prices = appendSamples(prices, src, expensive, in.CasePrice, in.MaxPrice)

	return calibrate(in, prices, p), nil
}

func appendSamples(prices []float64, src RandomSource, n int, lo, hi float64) []float64 {
	for i := 0; i < n; i++ {
		price := round(src.Float64()*(hi-lo)+lo, 2)
		if price < MinSamplePrice {
			price = MinSamplePrice
		}
		prices = append(prices, price)
	}
	return prices
}

// calibrate bisects the weighting exponent over [ExponentMin, ExponentMax].
// Raising the exponent shifts weight toward expensive items, so the weighted
// EV grows monotonically with it.
func calibrate(in Input, prices []float64, p Policy) Result {
	target := in.TargetExpectedValue()

	// a single item takes all the probability, there is nothing to solve
	if len(prices) == 1 {
		items := []GeneratedItem{{Price: prices[0], Chance: 100}}
		return finish(in, items, 0, target)
	}

	low, high := p.ExponentMin, p.ExponentMax
	for iter := 0; iter < p.Iterations; iter++ {
		mid := (low + high) / 2
		if weightedEV(prices, weights(prices, in.CasePrice, mid, p.AboveCaseBoost)) > target {
			high = mid
		} else {
			low = mid
		}
	}

	a := (low + high) / 2
	ws := weights(prices, in.CasePrice, a, p.AboveCaseBoost)
	var sum float64
	for _, w := range ws {
		sum += w
	}

	items := make([]GeneratedItem, len(prices))
	for i, price := range prices {
		items[i] = GeneratedItem{Price: price, Chance: round(ws[i]/sum*100, 3)}
	}
	return finish(in, items, a, target)
}

func finish(in Input, items []GeneratedItem, exponent, target float64) Result {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })

	var ev float64
	for _, it := range items {
		ev += it.Chance / 100 * it.Price
	}
	return Result{
		Items:            items,
		Exponent:         exponent,
		TargetEV:         target,
		ExpectedValue:    ev,
		ReturnPercentage: ev / in.CasePrice * 100,
	}
}

func weights(prices []float64, casePrice, exponent, boost float64) []float64 {
	ws := make([]float64, len(prices))
	for i, price := range prices {
		w := math.Pow(price, exponent)
		if price/casePrice > 1 {
			w *= boost
		}
		ws[i] = w
	}
	return ws
}

func weightedEV(prices, ws []float64) float64 {
	var sum, ev float64
	for _, w := range ws {
		sum += w
	}
	for i, price := range prices {
		ev += price * ws[i] / sum
	}
	return ev
}
