package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/distribution"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/logger"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/metrics"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

const g4skinsDoc = `{"result": {"name": "Single", "price": 5, "items": [{"value": 10, "rangeFrom": 0, "rangeTo": 99999}]}}`

const froggyDoc = `{"data": {"crate": {"title": "Pad", "price": 2, "crateItems": [
	{"price": 100, "chance": 1},
	{"price": 1, "chance": 99}
]}}}`

func newProcessor(workers int) *Processor {
	return NewProcessor(adapter.Default(), distribution.Default(), workers)
}

func TestProcessSourcesKeepsOrderAndSkipsFailures(t *testing.T) {
	srcs := []Source{
		{Name: "g4skins-single.json", Data: []byte(g4skinsDoc)},
		{Name: "keydrop-x.json", Data: []byte(`{}`)},
		{Name: "froggy-pad.json", Data: []byte(froggyDoc)},
		{Name: "froggy-broken.json", Data: []byte(`{"data": {}}`)},
		{Name: "hellcase-empty.json", Data: []byte(`{"case_price": 1, "itemlist": []}`)},
	}
	report := newProcessor(3).ProcessSources(context.Background(), srcs)

	require.Len(t, report.Results, len(srcs))
	for i, res := range report.Results {
		assert.Equal(t, srcs[i].Name, res.File)
	}
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 3, report.Failed)
	assert.NotEmpty(t, report.RunID)

	assert.ErrorIs(t, report.Results[1].Err, adapter.ErrUnknownSite)
	assert.ErrorIs(t, report.Results[3].Err, adapter.ErrMalformedData)
	assert.ErrorIs(t, report.Results[4].Err, models.ErrEmptyItemSet)

	single := report.Results[0].Summary
	assert.Equal(t, "g4skins", single.Site)
	assert.InDelta(t, 200.0, single.ReturnPercentage, 1e-9)

	pad := report.Results[2].Summary
	assert.Equal(t, "froggy", pad.Site)
	assert.InDelta(t, 1.99, pad.ExpectedValue, 1e-9)
	assert.Equal(t, metrics.RiskModerate, pad.RiskType)

	sums := report.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, "Single", sums[0].Name)
	assert.Equal(t, "Pad", sums[1].Name)
	assert.Len(t, report.Failures(), 3)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "g4skins-a.json")
	require.NoError(t, os.WriteFile(good, []byte(g4skinsDoc), 0o644))
	missing := filepath.Join(dir, "g4skins-missing.json")

	report := newProcessor(2).ProcessFiles(context.Background(), []string{good, missing})
	require.Len(t, report.Results, 2)
	assert.NoError(t, report.Results[0].Err)
	assert.ErrorIs(t, report.Results[1].Err, os.ErrNotExist)
	assert.Equal(t, "g4skins", report.Results[1].Site)
	assert.Equal(t, "io", failureReason(report.Results[1].Err))
}

func TestUnnamedCaseFallsBackToFilename(t *testing.T) {
	doc := `{"result": {"price": 1, "items": [{"value": 1, "rangeFrom": 0, "rangeTo": 9}]}}`
	report := newProcessor(1).ProcessSources(context.Background(), []Source{{Name: "g4skins-x.json", Data: []byte(doc)}})
	require.NoError(t, report.Results[0].Err)
	assert.Equal(t, "g4skins-x.json", report.Results[0].Summary.Name)
}

func TestRunIDFromContext(t *testing.T) {
	ctx := logger.WithRunID(context.Background(), "run-42")
	report := newProcessor(4).ProcessSources(ctx, nil)
	assert.Equal(t, "run-42", report.RunID)
	assert.Empty(t, report.Results)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srcs := []Source{{Name: "g4skins-a.json", Data: []byte(g4skinsDoc)}, {Name: "g4skins-b.json", Data: []byte(g4skinsDoc)}}
	report := newProcessor(1).ProcessSources(ctx, srcs)

	require.Len(t, report.Results, 2)
	assert.Equal(t, len(srcs), report.Processed+report.Failed)
	for _, res := range report.Failures() {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Equal(t, "g4skins", res.Site)
	}
}
