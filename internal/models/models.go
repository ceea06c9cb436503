package models

import (
	"errors"
	"sort"
)

// ErrEmptyItemSet is returned when a computation needs at least one item.
var ErrEmptyItemSet = errors.New("item set is empty")

// Item is one reward entry of a case, always in dollars with a 0..1 probability.
type Item struct {
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price"`
	Probability float64 `json:"probability"`
}

// Case is a container opened for a fixed price.
// Items are usually kept sorted by descending price.
type Case struct {
	Site  string  `json:"site"`
	Name  string  `json:"name"`
	Price float64 `json:"price"` // cost to open, dollars
	Items []Item  `json:"items"`
}

// EffectivePrice returns the case price, or 1 when the price is missing or zero
// so ratios and percentages never divide by zero.
func EffectivePrice(price float64) float64 {
	if price == 0 {
		return 1
	}
	return price
}

// SortByPriceDesc orders items by descending price, keeping the input order for ties.
func SortByPriceDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price > items[j].Price
	})
}

// TotalProbability sums raw item probabilities; it need not equal 1.
func TotalProbability(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Probability
	}
	return sum
}
