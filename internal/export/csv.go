package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/catalog"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/metrics"
)

// Decimal places used when rendering values.
const (
	CurrencyPlaces    = 2
	ProbabilityPlaces = 4
	PercentPlaces     = 2
	ChancePlaces      = 3
)

// Fixed renders v rounded half away from zero to the given places.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// SummaryHeader is the column layout of WriteSummaries.
func SummaryHeader() []string {
	h := []string{
		"Site", "Case", "Price", "Items", "TotalProbability", "ExpectedValue",
		"ReturnPercentage", "MinPrice", "MaxPrice", "MaxLootToPriceRatio", "RiskType",
	}
	for _, t := range distribution.Tiers() {
		h = append(h, string(t))
	}
	return h
}

// WriteSummaries writes one row per case summary.
func WriteSummaries(w io.Writer, sums []metrics.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader()); err != nil {
		return err
	}
	for _, s := range sums {
		row := []string{
			s.Site,
			s.Name,
			Fixed(s.Price, CurrencyPlaces),
			strconv.Itoa(s.ItemCount),
			Fixed(s.TotalProbability, ProbabilityPlaces),
			Fixed(s.ExpectedValue, CurrencyPlaces),
			Fixed(s.ReturnPercentage, PercentPlaces),
			Fixed(s.MinPrice, CurrencyPlaces),
			Fixed(s.MaxPrice, CurrencyPlaces),
			Fixed(s.MaxLootToPriceRatio, PercentPlaces),
			string(s.RiskType),
		}
		for _, t := range distribution.Tiers() {
			row = append(row, Fixed(s.Distribution.Get(t), PercentPlaces))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteGenerated writes a synthetic table as Price,Chance rows.
func WriteGenerated(w io.Writer, res generator.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Price", "Chance"}); err != nil {
		return err
	}
	for _, it := range res.Items {
		if err := cw.Write([]string{Fixed(it.Price, CurrencyPlaces), Fixed(it.Chance, ChancePlaces)}); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteComparison writes both sides of a comparison, tagged by mode.
func WriteComparison(w io.Writer, cmp generator.Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Mode", "Price", "Chance"}); err != nil {
		return err
	}
	for _, side := range []struct {
		mode string
		run  generator.Run
	}{
		{"original", cmp.Original},
		{"improved", cmp.Improved},
	} {
		for _, it := range side.run.Items {
			row := []string{side.mode, Fixed(it.Price, CurrencyPlaces), Fixed(it.Chance, ChancePlaces)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return flush(cw)
}

// WriteCatalogHistogram writes one row per site with its case count per price range.
func WriteCatalogHistogram(w io.Writer, stats []catalog.SiteStats) error {
	cw := csv.NewWriter(w)
	header := []string{"Site"}
	for _, r := range catalog.PriceRanges() {
		header = append(header, r.Label)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{s.Site}
		for _, b := range s.Buckets {
			row = append(row, strconv.Itoa(b.Count))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return flush(cw)
}

// WriteCatalogStats writes the per-site count, average and median case price.
func WriteCatalogStats(w io.Writer, stats []catalog.SiteStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Site", "Cases", "AvgPrice", "MedianPrice"}); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{s.Site, strconv.Itoa(s.CaseCount), Fixed(s.AvgPrice, CurrencyPlaces), Fixed(s.MedianPrice, CurrencyPlaces)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return flush(cw)
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
