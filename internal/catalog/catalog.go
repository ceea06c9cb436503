package catalog

import (
	"embed"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/schema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Entry is one case offered on a site's landing page.
type Entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"` // dollars
}

// Processor turns one site's catalog listing into entries.
type Processor struct {
	File    string // listing filename, e.g. "skin-club.json"
	Name    string // display name
	schema  string
	extract func(doc any) ([]Entry, error)
}

// Registry maps listing filenames to processors. It is read-only after
// NewRegistry and safe for concurrent use.
type Registry struct {
	processors map[string]Processor
	validator  *schema.Validator
}

// NewRegistry returns a registry holding the bundled processors.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		processors: make(map[string]Processor),
		validator:  schema.NewValidator(),
	}
	for _, p := range builtin() {
		b, err := schemaFS.ReadFile("schemas/" + p.schema + ".json")
		if err != nil {
			return nil, err
		}
		if err := r.validator.Register(p.File, b); err != nil {
			return nil, err
		}
		r.processors[p.File] = p
	}
	return r, nil
}

// Files returns the supported listing filenames, sorted.
func (r *Registry) Files() []string {
	files := make([]string, 0, len(r.processors))
	for f := range r.processors {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Get looks up a processor by the base name of filename.
func (r *Registry) Get(filename string) (Processor, bool) {
	p, ok := r.processors[filepath.Base(filename)]
	return p, ok
}

// Parse validates a raw listing and extracts its entries.
// Unknown filenames fail with *adapter.UnknownSiteError, bad documents with
// *adapter.MalformedDataError.
func (r *Registry) Parse(filename string, raw []byte) (Processor, []Entry, error) {
	p, ok := r.Get(filename)
	if !ok {
		return Processor{}, nil, &adapter.UnknownSiteError{Site: filepath.Base(filename)}
	}
	doc, err := schema.Parse(raw)
	if err != nil {
		return p, nil, &adapter.MalformedDataError{Site: p.File, Field: "/", Err: err}
	}
	if err := r.validator.Validate(p.File, doc); err != nil {
		field := "/"
		if v, ok := err.(*schema.Violation); ok {
			field = v.Location
		}
		return p, nil, &adapter.MalformedDataError{Site: p.File, Field: field, Err: err}
	}
	entries, err := p.extract(doc)
	if err != nil {
		return p, nil, err
	}
	return p, entries, nil
}

// Process parses a listing and summarizes it.
func (r *Registry) Process(filename string, raw []byte) (SiteStats, error) {
	p, entries, err := r.Parse(filename, raw)
	if err != nil {
		return SiteStats{}, err
	}
	stats, err := Summarize(p.Name, entries)
	if err != nil {
		return SiteStats{}, fmt.Errorf("summarize %s: %w", p.File, err)
	}
	stats.File = p.File
	return stats, nil
}
