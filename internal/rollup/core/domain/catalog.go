package domain

// Catalog is the set of active entities and their configured sub-entities.
// Every entry is reported even when it has no facts in the window.
type Catalog struct {
	Entities []CatalogEntity `json:"entities"`
}

type CatalogEntity struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	SubEntities []CatalogSubEntity `json:"sub_entities"`
}

type CatalogSubEntity struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Category *string `json:"category,omitempty"`
}

// Only returns a catalog restricted to the entity with the given id.
func (c Catalog) Only(entityID string) Catalog {
	for _, e := range c.Entities {
		if e.ID == entityID {
			return Catalog{Entities: []CatalogEntity{e}}
		}
	}
	return Catalog{}
}
