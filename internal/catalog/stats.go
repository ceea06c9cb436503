package catalog

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrNoCases is returned when a listing yields no priced cases.
var ErrNoCases = errors.New("catalog has no priced cases")

// PriceRange is a half-open [Min, Max) dollar band.
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether price falls in the band.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price < r.Max
}

// PriceRanges returns the histogram bands from cheapest to most expensive.
func PriceRanges() []PriceRange {
	return []PriceRange{
		{Label: "$0-1", Min: 0, Max: 1},
		{Label: "$1-5", Min: 1, Max: 5},
		{Label: "$5-10", Min: 5, Max: 10},
		{Label: "$10-25", Min: 10, Max: 25},
		{Label: "$25-50", Min: 25, Max: 50},
		{Label: "$50-100", Min: 50, Max: 100},
		{Label: "$100+", Min: 100, Max: math.Inf(1)},
	}
}

// Bucket counts the cases of one price range.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SiteStats summarizes one site's catalog.
type SiteStats struct {
	File        string   `json:"file"`
	Site        string   `json:"site"`
	CaseCount   int      `json:"case_count"`
	AvgPrice    float64  `json:"avg_price"`
	MedianPrice float64  `json:"median_price"`
	Buckets     []Bucket `json:"buckets"`
}

// Summarize computes price statistics and the range histogram.
// The median is the upper middle element for even counts.
func Summarize(site string, entries []Entry) (SiteStats, error) {
	if len(entries) == 0 {
		return SiteStats{}, ErrNoCases
	}
	prices := make([]float64, len(entries))
	for i, e := range entries {
		prices[i] = e.Price
	}
	sort.Float64s(prices)

	return SiteStats{
		Site:        site,
		CaseCount:   len(prices),
		AvgPrice:    stat.Mean(prices, nil),
		MedianPrice: prices[len(prices)/2],
		Buckets:     Histogram(prices),
	}, nil
}

// Histogram counts prices per range. Prices outside every range (negative) are ignored.
func Histogram(prices []float64) []Bucket {
	ranges := PriceRanges()
	buckets := make([]Bucket, len(ranges))
	for i, r := range ranges {
		buckets[i].Label = r.Label
	}
	for _, p := range prices {
		for i, r := range ranges {
			if r.Contains(p) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
