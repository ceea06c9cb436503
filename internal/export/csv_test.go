package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/catalog"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/generator"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/metrics"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

func readAll(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(b).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "1.01", Fixed(1.005, 2))
	assert.Equal(t, "0.333", Fixed(1.0/3, 3))
	assert.Equal(t, "5.00", Fixed(5, 2))
	assert.Equal(t, "0.0005", Fixed(0.0005, 4))
}

func TestWriteSummaries(t *testing.T) {
	c := models.Case{Site: "g4skins", Name: "Chroma, Deluxe", Price: 2, Items: []models.Item{
		{Price: 50, Probability: 0.25},
		{Price: 1.5, Probability: 0.75},
	}}
	sum, err := metrics.Summarize(c, distribution.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaries(&buf, []metrics.Summary{sum}))
	rows := readAll(t, &buf)

	require.Len(t, rows, 2)
	assert.Equal(t, SummaryHeader(), rows[0])
	assert.Equal(t, []string{
		"g4skins", "Chroma, Deluxe", "2.00", "2", "1.0000", "13.63", "681.25", "1.50", "50.00", "25.00",
		string(metrics.RiskModerate), "0.00", "50.00", "0.00", "0.00", "50.00",
	}, rows[1])
}

func TestWriteComparisonAndGenerated(t *testing.T) {
	in := generator.Input{CasePrice: 10, TargetReturnPercentage: 90, MinPrice: 1, MaxPrice: 100, ItemCount: 6}
	cmp, err := generator.Compare(in, nil, generator.DefaultCompareOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, cmp))
	rows := readAll(t, &buf)
	require.Len(t, rows, 1+12)
	assert.Equal(t, []string{"Mode", "Price", "Chance"}, rows[0])
	assert.Equal(t, "original", rows[1][0])
	assert.Equal(t, "improved", rows[12][0])

	buf.Reset()
	require.NoError(t, WriteGenerated(&buf, cmp.Original.Result))
	rows = readAll(t, &buf)
	require.Len(t, rows, 7)
	for _, r := range rows[1:] {
		assert.Len(t, strings.SplitN(r[0], ".", 2)[1], 2, r[0])
		assert.Len(t, strings.SplitN(r[1], ".", 2)[1], 3, r[1])
	}
}

func TestWriteCatalog(t *testing.T) {
	stats, err := catalog.Summarize("Hellcase", []catalog.Entry{{Price: 0.5}, {Price: 3}, {Price: 120}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCatalogHistogram(&buf, []catalog.SiteStats{stats}))
	assert.Equal(t, "Site,$0-1,$1-5,$5-10,$10-25,$25-50,$50-100,$100+\nHellcase,1,1,0,0,0,0,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCatalogStats(&buf, []catalog.SiteStats{stats}))
	assert.Equal(t, "Site,Cases,AvgPrice,MedianPrice\nHellcase,3,41.17,3.00\n", buf.String())
}
