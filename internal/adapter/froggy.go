package adapter

import "github.com/zip-fa/reimagined-octo-fiesta/internal/models"

// Froggy crates list dollar prices and percentage chances. Joker-mode
// entries are not part of the regular drop table and are skipped.
type Froggy struct{}

type froggyDoc struct {
	Data struct {
		Crate struct {
			Title      string `json:"title"`
			Price      Number `json:"price"`
			CrateItems []struct {
				Name        string `json:"name"`
				Price       Number `json:"price"`
				Chance      Number `json:"chance"`
				IsJokerMode bool   `json:"isJokerMode"`
			} `json:"crateItems"`
		} `json:"crate"`
	} `json:"data"`
}

func (Froggy) Key() string         { return "froggy" }
func (Froggy) DisplayName() string { return "Froggy" }
func (Froggy) Schema() []byte      { return mustSchema("froggy") }

func (f Froggy) Normalize(doc any) (models.Case, error) {
	var raw froggyDoc
	if err := Decode(f.Key(), doc, &raw); err != nil {
		return models.Case{}, err
	}

	crate := raw.Data.Crate
	items := make([]models.Item, 0, len(crate.CrateItems))
	for _, it := range crate.CrateItems {
		if it.IsJokerMode {
			continue
		}
		items = append(items, models.Item{
			Name:        it.Name,
			Price:       it.Price.Float(),
			Probability: it.Chance.Float() / 100,
		})
	}
	return models.Case{
		Name:  crate.Title,
		Price: crate.Price.Float(),
		Items: items,
	}, nil
}
