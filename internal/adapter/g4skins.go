package adapter

import "github.com/zip-fa/reimagined-octo-fiesta/internal/models"

// G4SkinsRollRange is the size of the roll space item ranges are drawn from.
const G4SkinsRollRange = 100000

// G4Skins gives each item an inclusive roll range; its probability is the
// range's share of the roll space.
type G4Skins struct{}

type g4skinsDoc struct {
	Result struct {
		Name  string `json:"name"`
		Price Number `json:"price"`
		Items []struct {
			Name      string `json:"name"`
			Value     Number `json:"value"`
			RangeFrom Number `json:"rangeFrom"`
			RangeTo   Number `json:"rangeTo"`
		} `json:"items"`
	} `json:"result"`
}

func (G4Skins) Key() string         { return "g4skins" }
func (G4Skins) DisplayName() string { return "G4Skins" }
func (G4Skins) Schema() []byte      { return mustSchema("g4skins") }

func (g G4Skins) Normalize(doc any) (models.Case, error) {
	var raw g4skinsDoc
	if err := Decode(g.Key(), doc, &raw); err != nil {
		return models.Case{}, err
	}

	items := make([]models.Item, 0, len(raw.Result.Items))
	for _, it := range raw.Result.Items {
		width := it.RangeTo.Float() - it.RangeFrom.Float() + 1
		items = append(items, models.Item{
			Name:        it.Name,
			Price:       it.Value.Float(),
			Probability: width / G4SkinsRollRange,
		})
	}
	return models.Case{
		Name:  raw.Result.Name,
		Price: raw.Result.Price.Float(),
		Items: items,
	}, nil
}
