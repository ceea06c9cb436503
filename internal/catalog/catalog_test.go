package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

func TestFiles(t *testing.T) {
	assert.Equal(t, []string{"ggdrop.json", "hellcase.json", "key-drop.json", "skin-club.json"}, newRegistry(t).Files())
}

func TestParseListings(t *testing.T) {
	tests := []struct {
		file string
		raw  string
		want []Entry
	}{
		{
			file: "ggdrop.json",
			raw:  `{"data": {"cases": [{"caseItems": [{"title_en": "Lore", "price": 209}]}, {"caseItems": [{"title_en": "Cheap", "price": 52.25}]}]}}`,
			want: []Entry{{Name: "Lore", Price: 2}, {Name: "Cheap", Price: 0.5}},
		},
		{
			file: "key-drop.json",
			raw:  `{"data": [{"name": "Bravo", "price": 3.5}, {"name": "Free", "price": 0}]}`,
			want: []Entry{{Name: "Bravo", Price: 3.5}, {Name: "Free", Price: 0}},
		},
		{
			file: "hellcase.json",
			raw:  `{"main_page": [{"cases_to_show": [{"locale_name": "Chroma", "price": 4}, {"locale_name": "", "price": 2}, {"locale_name": "Sold out"}]}]}`,
			want: []Entry{{Name: "Chroma", Price: 4}},
		},
	}
	r := newRegistry(t)
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, entries, err := r.Parse(tt.file, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.file, p.File)
			require.Len(t, entries, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.Name, entries[i].Name)
				assert.InDelta(t, want.Price, entries[i].Price, 1e-12)
			}
		})
	}
}

func TestProcessSkinClubFixture(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "skin-club.json"))
	require.NoError(t, err)

	stats, err := newRegistry(t).Process("uploads/skin-club.json", raw)
	require.NoError(t, err)

	assert.Equal(t, "skin-club.json", stats.File)
	assert.Equal(t, "Skin Club", stats.Site)
	assert.Equal(t, 3, stats.CaseCount)
	assert.InDelta(t, (2.5+12.99+250)/3, stats.AvgPrice, 1e-9)
	assert.InDelta(t, 12.99, stats.MedianPrice, 1e-9)
	assert.Equal(t, []int{0, 1, 0, 1, 0, 0, 1}, counts(stats.Buckets))
}

func TestParseErrors(t *testing.T) {
	r := newRegistry(t)

	_, _, err := r.Parse("csgonet.json", []byte(`{}`))
	assert.ErrorIs(t, err, adapter.ErrUnknownSite)

	_, _, err = r.Parse("hellcase.json", []byte(`{"main_page": [{}]}`))
	require.ErrorIs(t, err, adapter.ErrMalformedData)
	var dataErr *adapter.MalformedDataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "/main_page/0/cases_to_show", dataErr.Field)

	_, _, err = r.Parse("key-drop.json", []byte(`[`))
	assert.ErrorIs(t, err, adapter.ErrMalformedData)
}

func TestProcessEmptyListing(t *testing.T) {
	_, err := newRegistry(t).Process("skin-club.json", []byte(`{"data": [{"cases": [{"title": "promo"}]}]}`))
	assert.ErrorIs(t, err, ErrNoCases)
}

func TestSummarizeMedianAndMean(t *testing.T) {
	stats, err := Summarize("X", []Entry{{Price: 4}, {Price: 1}, {Price: 3}, {Price: 2}})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CaseCount)
	assert.InDelta(t, 2.5, stats.AvgPrice, 1e-12)
	// upper middle for even counts
	assert.Equal(t, 3.0, stats.MedianPrice)

	_, err = Summarize("X", nil)
	assert.ErrorIs(t, err, ErrNoCases)
}

func TestHistogramBoundaries(t *testing.T) {
	buckets := Histogram([]float64{0, 0.99, 1, 4.99, 5, 10, 24.99, 25, 50, 99.99, 100, 1e6, -1})
	assert.Equal(t, []int{2, 2, 1, 2, 1, 2, 2}, counts(buckets))

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"$0-1", "$1-5", "$5-10", "$10-25", "$25-50", "$50-100", "$100+"}, labels)
	assert.True(t, math.IsInf(PriceRanges()[6].Max, 1))
}

func counts(buckets []Bucket) []int {
	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = b.Count
	}
	return out
}
