package adapter

import "github.com/zip-fa/reimagined-octo-fiesta/internal/models"

// HellCase prices are dollars already; odds are percentages.
type HellCase struct{}

type hellcaseDoc struct {
	CaseName  string `json:"casename"`
	CasePrice Number `json:"case_price"`
	ItemList  []struct {
		Name  string `json:"name"`
		Items []struct {
			Name         string `json:"name"`
			SteamPriceEN Number `json:"steam_price_en"`
			Odds         Number `json:"odds"`
		} `json:"items"`
	} `json:"itemlist"`
}

func (HellCase) Key() string         { return "hellcase" }
func (HellCase) DisplayName() string { return "HellCase" }
func (HellCase) Schema() []byte      { return mustSchema("hellcase") }

func (h HellCase) Normalize(doc any) (models.Case, error) {
	var raw hellcaseDoc
	if err := Decode(h.Key(), doc, &raw); err != nil {
		return models.Case{}, err
	}

	var items []models.Item
	for _, group := range raw.ItemList {
		for _, it := range group.Items {
			name := it.Name
			if name == "" {
				name = group.Name
			}
			items = append(items, models.Item{
				Name:        name,
				Price:       it.SteamPriceEN.Float(),
				Probability: it.Odds.Float() / 100,
			})
		}
	}
	return models.Case{
		Name:  raw.CaseName,
		Price: raw.CasePrice.Float(),
		Items: items,
	}, nil
}
