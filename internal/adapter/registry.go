package adapter

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/schema"
)

// Registry maps site keys to adapters. Adapters hold no state, so one
// registry can normalize many files concurrently.
type Registry struct {
	adapters  map[string]Adapter
	validator *schema.Validator
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters:  make(map[string]Adapter),
		validator: schema.NewValidator(),
	}
}

// Default returns a registry holding every builtin adapter.
func Default() *Registry {
	r := NewRegistry()
	for _, a := range Builtin() {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds an adapter and compiles its schema.
func (r *Registry) Register(a Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.Key()
	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("adapter for site %s is already registered", key)
	}
	if err := r.validator.Register(key, a.Schema()); err != nil {
		return err
	}
	r.adapters[key] = a
	return nil
}

// Get retrieves an adapter by site key.
func (r *Registry) Get(site string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[site]
	return a, ok
}

// Keys returns the registered site keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.adapters))
	for k := range r.adapters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize converts a parsed JSON document for the given site into a case.
// It fails with *UnknownSiteError or *MalformedDataError.
func (r *Registry) Normalize(site string, doc any) (models.Case, error) {
	a, ok := r.Get(site)
	if !ok {
		return models.Case{}, &UnknownSiteError{Site: site}
	}
	if err := r.validator.Validate(site, doc); err != nil {
		field := "/"
		if v, ok := err.(*schema.Violation); ok {
			field = v.Location
		}
		return models.Case{}, malformed(site, field, err)
	}

	c, err := a.Normalize(doc)
	if err != nil {
		return models.Case{}, err
	}
	c.Site = site
	if math.IsNaN(c.Price) || math.IsInf(c.Price, 0) || c.Price < 0 {
		return models.Case{}, malformed(site, "price", fmt.Errorf("case price %v out of range", c.Price))
	}
	if err := checkItems(site, c.Items); err != nil {
		return models.Case{}, err
	}
	models.SortByPriceDesc(c.Items)
	return c, nil
}

// NormalizeBytes parses raw JSON and normalizes it.
func (r *Registry) NormalizeBytes(site string, raw []byte) (models.Case, error) {
	if _, ok := r.Get(site); !ok {
		return models.Case{}, &UnknownSiteError{Site: site}
	}
	doc, err := schema.Parse(raw)
	if err != nil {
		return models.Case{}, malformed(site, "/", err)
	}
	return r.Normalize(site, doc)
}

func checkItems(site string, items []models.Item) error {
	for i, it := range items {
		if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
			return malformed(site, fmt.Sprintf("items[%d].price", i), fmt.Errorf("price %v out of range", it.Price))
		}
		if math.IsNaN(it.Probability) || it.Probability < 0 || it.Probability > 1 {
			return malformed(site, fmt.Sprintf("items[%d].probability", i), fmt.Errorf("probability %v out of range", it.Probability))
		}
	}
	return nil
}

// SiteKey derives the site key from an export filename: the base name up to
// the first hyphen ("hellcase-2024-01.json" -> "hellcase").
func SiteKey(filename string) string {
	base := filepath.Base(filename)
	key, _, _ := strings.Cut(base, "-")
	return key
}
