package generator

import (
	"math"

	"github.com/shopspring/decimal"
)

// MinSamplePrice is the smallest price a sample can round to.
const MinSamplePrice = 0.01

// Input describes the target economics of a synthetic case.
type Input struct {
	CasePrice              float64 `json:"case_price" yaml:"case_price"`
	TargetReturnPercentage float64 `json:"target_return_percentage" yaml:"target_return_percentage"`
	MinPrice               float64 `json:"min_price" yaml:"min_price"`
	MaxPrice               float64 `json:"max_price" yaml:"max_price"`
	ItemCount              int     `json:"item_count" yaml:"item_count"`
}

// TargetExpectedValue is the expected reward value the table must reach.
func (in Input) TargetExpectedValue() float64 {
	return in.CasePrice * in.TargetReturnPercentage / 100
}

// Validate rejects input whose sampling ranges would be empty or inverted.
func (in Input) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"case_price", in.CasePrice},
		{"target_return_percentage", in.TargetReturnPercentage},
		{"min_price", in.MinPrice},
		{"max_price", in.MaxPrice},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return &InvalidRangeError{Field: f.name, Reason: "must be a positive number"}
		}
	}
	if in.ItemCount < 1 {
		return &InvalidRangeError{Field: "item_count", Reason: "must be at least 1"}
	}
	if in.MinPrice < MinSamplePrice {
		return &InvalidRangeError{Field: "min_price", Reason: "must be at least 0.01"}
	}
	if in.MinPrice >= in.CasePrice {
		return &InvalidRangeError{Field: "min_price", Reason: "must be below case_price"}
	}
	if in.CasePrice >= in.MaxPrice {
		return &InvalidRangeError{Field: "max_price", Reason: "must be above case_price"}
	}
	return nil
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
