package adapter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestDefaultRegistryKeys(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"froggy", "g4skins", "ggdrop", "hellcase", "skinclub"}, r.Keys())
	assert.Error(t, r.Register(Froggy{}))
}

func TestNormalizeFixtures(t *testing.T) {
	r := Default()
	tests := []struct {
		file  string
		name  string
		price float64
		items []models.Item
	}{
		{
			file:  "g4skins-case.json",
			name:  "Single Roll",
			price: 5,
			items: []models.Item{{Name: "Glock-18 | Fade", Price: 10, Probability: 1}},
		},
		{
			file:  "ggdrop-case.json",
			name:  "Dragon Lore Hunt",
			price: 2,
			items: []models.Item{
				{Name: "AWP | Dragon Lore (FT)", Price: 5000, Probability: 0.0005},
				{Name: "AWP | Dragon Lore (WW)", Price: 3500, Probability: 0.0005},
				{Name: "P250 | Sand Dune", Price: 0.05, Probability: 0.999},
			},
		},
		{
			file:  "skinclub-case.json",
			name:  "Neon Rider",
			price: 2.5,
			items: []models.Item{
				{Name: "Karambit | Fade", Price: 1500, Probability: 0.005},
				{Name: "AK-47 | Redline", Price: 15, Probability: 0.095},
				{Name: "MP9 | Sand Dashed", Price: 0.1, Probability: 0.9},
			},
		},
		{
			file:  "hellcase-case.json",
			name:  "Chroma",
			price: 4,
			items: []models.Item{
				{Name: "M4A4 | Howl", Price: 2500, Probability: 0.001},
				{Name: "M4A4 | Howl (MW)", Price: 1800, Probability: 0.0015},
				{Name: "Nova | Predator", Price: 0.2, Probability: 0.9975},
			},
		},
		{
			file:  "froggy-case.json",
			name:  "Lily Pad",
			price: 1.5,
			items: []models.Item{
				{Name: "Butterfly Knife", Price: 300, Probability: 0.002},
				{Name: "USP-S | Cortex", Price: 2.5, Probability: 0.298},
				{Name: "Tec-9 | Groundwater", Price: 0.1, Probability: 0.7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			site := SiteKey(tt.file)
			c, err := r.NormalizeBytes(site, loadFixture(t, tt.file))
			require.NoError(t, err)

			assert.Equal(t, site, c.Site)
			assert.Equal(t, tt.name, c.Name)
			assert.InDelta(t, tt.price, c.Price, 1e-12)
			require.Len(t, c.Items, len(tt.items))
			for i, want := range tt.items {
				assert.Equal(t, want.Name, c.Items[i].Name)
				assert.InDelta(t, want.Price, c.Items[i].Price, 1e-9)
				assert.InDelta(t, want.Probability, c.Items[i].Probability, 1e-12)
			}
		})
	}
}

func TestNormalizeParsedDocument(t *testing.T) {
	// documents decoded by encoding/json carry float64 numbers
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"result": {"price": 5, "items": [{"value": 10, "rangeFrom": 0, "rangeTo": 99999}]}
	}`), &doc))

	c, err := Default().Normalize("g4skins", doc)
	require.NoError(t, err)
	assert.Equal(t, []models.Item{{Price: 10, Probability: 1}}, c.Items)
	assert.Equal(t, 5.0, c.Price)
}

func TestGGDropPriceConversion(t *testing.T) {
	doc := map[string]any{
		"data": map[string]any{
			"price": 104.5,
			"items": []any{},
		},
	}
	c, err := Default().Normalize("ggdrop", doc)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Price, 1e-12)
	assert.Empty(t, c.Items)
}

func TestNormalizeUnknownSite(t *testing.T) {
	_, err := Default().Normalize("keydrop", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSite)

	var siteErr *UnknownSiteError
	require.True(t, errors.As(err, &siteErr))
	assert.Equal(t, "keydrop", siteErr.Site)

	_, err = Default().NormalizeBytes("keydrop", []byte(`not json`))
	assert.ErrorIs(t, err, ErrUnknownSite)
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		site  string
		raw   string
		field string
	}{
		{"missing crate items", "froggy", `{"data": {"crate": {"price": 1}}}`, "/data/crate/crateItems"},
		{"missing root", "g4skins", `{"other": {}}`, "/result"},
		{"wrong type", "hellcase", `{"case_price": 1, "itemlist": [{"items": [{"steam_price_en": true, "odds": 1}]}]}`, "/itemlist/0/items/0/steam_price_en"},
		{"missing nested array", "skinclub", `{"data": {"price": 100, "last_successful_generation": {}}}`, "/data/last_successful_generation/contents"},
		{"probability above one", "hellcase", `{"case_price": 1, "itemlist": [{"items": [{"steam_price_en": 1, "odds": 150}]}]}`, "items[0].probability"},
		{"non numeric string", "froggy", `{"data": {"crate": {"price": "cheap", "crateItems": []}}}`, "/"},
		{"case price NaN", "g4skins", `{"result": {"price": "NaN", "items": [{"value": 10, "rangeFrom": 0, "rangeTo": 99999}]}}`, "price"},
		{"case price Inf", "g4skins", `{"result": {"price": "Inf", "items": [{"value": 10, "rangeFrom": 0, "rangeTo": 99999}]}}`, "price"},
		{"negative case price", "g4skins", `{"result": {"price": -5, "items": [{"value": 10, "rangeFrom": 0, "rangeTo": 99999}]}}`, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().NormalizeBytes(tt.site, []byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedData)

			var dataErr *MalformedDataError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, tt.site, dataErr.Site)
			assert.Equal(t, tt.field, dataErr.Field)
		})
	}
}

func TestNormalizeBytesInvalidJSON(t *testing.T) {
	_, err := Default().NormalizeBytes("froggy", []byte(`{"data":`))
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestSiteKey(t *testing.T) {
	assert.Equal(t, "hellcase", SiteKey("exports/hellcase-chroma-2024.json"))
	assert.Equal(t, "froggy", SiteKey("froggy-lily.json"))
	assert.Equal(t, "ggdrop.json", SiteKey("ggdrop.json"))
}

func TestNumberAcceptsStrings(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1.5, "b": "2.25", "c": "12.5%"}`), &v))
	assert.Equal(t, 1.5, v.A.Float())
	assert.Equal(t, 2.25, v.B.Float())
	assert.Equal(t, 12.5, v.C.Float())
}
