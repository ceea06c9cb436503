package adapter

import (
	"embed"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Adapter converts one site's raw export into a canonical case.
// All unit conversion happens inside Normalize; the returned case is in
// dollars with 0..1 probabilities.
type Adapter interface {
	// Key is the site identifier, the export filename prefix before the first hyphen.
	Key() string
	DisplayName() string
	// Schema is the JSON schema the raw document must satisfy.
	Schema() []byte
	Normalize(doc any) (models.Case, error)
}

func mustSchema(name string) []byte {
	b, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(err)
	}
	return b
}

// Builtin returns the bundled site adapters.
func Builtin() []Adapter {
	return []Adapter{
		GGDrop{},
		SkinClub{},
		G4Skins{},
		HellCase{},
		Froggy{},
	}
}
