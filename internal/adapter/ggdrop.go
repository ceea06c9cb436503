package adapter

import "github.com/zip-fa/reimagined-octo-fiesta/internal/models"

// GGDropExchangeRate converts GGDrop's site currency to dollars.
const GGDropExchangeRate = 104.5

// GGDrop prices cases in site currency and items in cents.
type GGDrop struct{}

type ggdropDoc struct {
	Data struct {
		Title string `json:"title_en"`
		Price Number `json:"price"`
		Items []struct {
			Name       string `json:"name"`
			SteamItems []struct {
				Name        string `json:"name"`
				SteamPrice  Number `json:"steam_price"`
				Probability Number `json:"probability"`
			} `json:"steam_items"`
		} `json:"items"`
	} `json:"data"`
}

func (GGDrop) Key() string         { return "ggdrop" }
func (GGDrop) DisplayName() string { return "GGDrop" }
func (GGDrop) Schema() []byte      { return mustSchema("ggdrop") }

func (g GGDrop) Normalize(doc any) (models.Case, error) {
	var raw ggdropDoc
	if err := Decode(g.Key(), doc, &raw); err != nil {
		return models.Case{}, err
	}

	// every steam item is its own reward entry
	var items []models.Item
	for _, it := range raw.Data.Items {
		for _, si := range it.SteamItems {
			name := si.Name
			if name == "" {
				name = it.Name
			}
			items = append(items, models.Item{
				Name:        name,
				Price:       si.SteamPrice.Float() / 100,
				Probability: si.Probability.Float(),
			})
		}
	}
	return models.Case{
		Name:  raw.Data.Title,
		Price: raw.Data.Price.Float() / GGDropExchangeRate,
		Items: items,
	}, nil
}
