package generator

import (
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
)

// Run is one generated table with its tier distribution.
type Run struct {
	Result
	Distribution distribution.Distribution `json:"distribution"`
}

// Comparison puts the original and improved generation side by side.
type Comparison struct {
	Input    Input `json:"input"`
	Original Run   `json:"original"`
	Improved Run   `json:"improved"`
}

// CompareOptions selects the policies and tier boundaries for each side.
type CompareOptions struct {
	Original           Policy
	Improved           Policy
	OriginalThresholds distribution.Thresholds
	ImprovedThresholds distribution.Thresholds
}

// DefaultCompareOptions mirrors the stock original/improved setup.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{
		Original:           OriginalPolicy(),
		Improved:           ImprovedPolicy(),
		OriginalThresholds: distribution.Default(),
		ImprovedThresholds: distribution.Improved(),
	}
}

// Compare resets src before each side so both tables start from the same seed.
func Compare(in Input, src RandomSource, opts CompareOptions) (Comparison, error) {
	if src == nil {
		src = NewParkMiller(DefaultSeed)
	}
	original, err := run(in, src, opts.Original, opts.OriginalThresholds)
	if err != nil {
		return Comparison{}, err
	}
	improved, err := run(in, src, opts.Improved, opts.ImprovedThresholds)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Input: in, Original: original, Improved: improved}, nil
}

func run(in Input, src RandomSource, p Policy, th distribution.Thresholds) (Run, error) {
	src.Reset()
	res, err := Generate(in, p, src)
	if err != nil {
		return Run{}, err
	}
	return Describe(res, in.CasePrice, th)
}

// Describe attaches the tier distribution of a generated table.
func Describe(res Result, casePrice float64, th distribution.Thresholds) (Run, error) {
	dist, err := distribution.Compute(res.CaseItems(), casePrice, th)
	if err != nil {
		return Run{}, err
	}
	return Run{Result: res, Distribution: dist}, nil
}
