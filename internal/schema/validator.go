package schema

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// baseURL namespaces embedded schemas; nothing is fetched from it.
const baseURL = "https://caseodds.local/schemas/"

// Violation describes the first problem found in a document.
type Violation struct {
	Location string // pointer to the offending value, e.g. /data/crate/crateItems
	Keyword  string // failed keyword path, e.g. required or properties.price.type
	Err      error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("at %s: %s validation failed", v.Location, v.Keyword)
}

func (v *Violation) Unwrap() error { return v.Err }

// Validator validates parsed JSON documents against named schemas.
type Validator struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles schemaJSON under name. Registering a name twice is an error.
func (v *Validator) Register(name string, schemaJSON []byte) error {
	doc, err := Parse(schemaJSON)
	if err != nil {
		return fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, exists := v.schemas[name]; exists {
		return fmt.Errorf("schema %s is already registered", name)
	}
	url := baseURL + name + ".json"
	if err := v.compiler.AddResource(url, doc); err != nil {
		return fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	sch, err := v.compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	v.schemas[name] = sch
	return nil
}

// Has reports whether a schema is registered under name.
func (v *Validator) Has(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.schemas[name]
	return ok
}

// Validate checks doc against the named schema. A failed validation returns *Violation.
func (v *Validator) Validate(name string, doc any) error {
	v.mu.RLock()
	sch, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no schema registered for %s", name)
	}

	err := sch.Validate(doc)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}
	return violationFrom(verr)
}

// Parse decodes raw JSON the way the validator expects (numbers as json.Number).
func Parse(raw []byte) (any, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// violationFrom picks the deepest first cause, which names the actual field.
func violationFrom(err *jsonschema.ValidationError) *Violation {
	leaf := err
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	location := "/" + strings.Join(leaf.InstanceLocation, "/")
	keyword := ""
	if leaf.ErrorKind != nil {
		keyword = strings.Join(leaf.ErrorKind.KeywordPath(), ".")
		if req, ok := leaf.ErrorKind.(*kind.Required); ok && len(req.Missing) > 0 {
			location = strings.TrimSuffix(location, "/") + "/" + req.Missing[0]
		}
	}
	if keyword == "" {
		keyword = "schema"
	}
	return &Violation{Location: location, Keyword: keyword, Err: err}
}
