package adapter

import "github.com/zip-fa/reimagined-octo-fiesta/internal/models"

// SkinClub reports case and item prices in cents and chances as percentage strings.
type SkinClub struct{}

type skinclubDoc struct {
	Data struct {
		Title      string `json:"title"`
		Price      Number `json:"price"`
		Generation struct {
			Contents []struct {
				ChancePercent Number `json:"chance_percent"`
				Item          struct {
					Name  string `json:"name"`
					Price Number `json:"price"`
				} `json:"item"`
			} `json:"contents"`
		} `json:"last_successful_generation"`
	} `json:"data"`
}

func (SkinClub) Key() string         { return "skinclub" }
func (SkinClub) DisplayName() string { return "Skin Club" }
func (SkinClub) Schema() []byte      { return mustSchema("skinclub") }

func (s SkinClub) Normalize(doc any) (models.Case, error) {
	var raw skinclubDoc
	if err := Decode(s.Key(), doc, &raw); err != nil {
		return models.Case{}, err
	}

	items := make([]models.Item, 0, len(raw.Data.Generation.Contents))
	for _, c := range raw.Data.Generation.Contents {
		items = append(items, models.Item{
			Name:        c.Item.Name,
			Price:       c.Item.Price.Float() / 100,
			Probability: c.ChancePercent.Float() / 100,
		})
	}
	return models.Case{
		Name:  raw.Data.Title,
		Price: raw.Data.Price.Float() / 100,
		Items: items,
	}, nil
}
