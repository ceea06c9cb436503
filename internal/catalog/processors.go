package catalog

import "github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"

func builtin() []Processor {
	return []Processor{
		{File: "ggdrop.json", Name: "GGDrop", schema: "ggdrop", extract: ggdropEntries},
		{File: "key-drop.json", Name: "KeyDrop", schema: "keydrop", extract: keydropEntries},
		{File: "skin-club.json", Name: "Skin Club", schema: "skinclub", extract: skinclubEntries},
		{File: "hellcase.json", Name: "Hellcase", schema: "hellcase", extract: hellcaseEntries},
	}
}

func ggdropEntries(doc any) ([]Entry, error) {
	var raw struct {
		Data struct {
			Cases []struct {
				CaseItems []struct {
					Title string         `json:"title_en"`
					Price adapter.Number `json:"price"`
				} `json:"caseItems"`
			} `json:"cases"`
		} `json:"data"`
	}
	if err := adapter.Decode("ggdrop.json", doc, &raw); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, category := range raw.Data.Cases {
		for _, it := range category.CaseItems {
			entries = append(entries, Entry{
				Name:  it.Title,
				Price: it.Price.Float() / adapter.GGDropExchangeRate,
			})
		}
	}
	return entries, nil
}

func keydropEntries(doc any) ([]Entry, error) {
	var raw struct {
		Data []struct {
			Name  string         `json:"name"`
			Price adapter.Number `json:"price"`
		} `json:"data"`
	}
	if err := adapter.Decode("key-drop.json", doc, &raw); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw.Data))
	for _, it := range raw.Data {
		entries = append(entries, Entry{Name: it.Name, Price: it.Price.Float()})
	}
	return entries, nil
}

// skin club sections mix real cases with promo tiles that have no price or title
func skinclubEntries(doc any) ([]Entry, error) {
	var raw struct {
		Data []struct {
			Cases []struct {
				Title string         `json:"title"`
				Price adapter.Number `json:"price"`
			} `json:"cases"`
		} `json:"data"`
	}
	if err := adapter.Decode("skin-club.json", doc, &raw); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, section := range raw.Data {
		for _, c := range section.Cases {
			if c.Price == 0 || c.Title == "" {
				continue
			}
			entries = append(entries, Entry{Name: c.Title, Price: c.Price.Float() / 100})
		}
	}
	return entries, nil
}

func hellcaseEntries(doc any) ([]Entry, error) {
	var raw struct {
		MainPage []struct {
			CasesToShow []struct {
				LocaleName string         `json:"locale_name"`
				Price      adapter.Number `json:"price"`
			} `json:"cases_to_show"`
		} `json:"main_page"`
	}
	if err := adapter.Decode("hellcase.json", doc, &raw); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, category := range raw.MainPage {
		for _, c := range category.CasesToShow {
			if c.Price == 0 || c.LocaleName == "" {
				continue
			}
			entries = append(entries, Entry{Name: c.LocaleName, Price: c.Price.Float()})
		}
	}
	return entries, nil
}
