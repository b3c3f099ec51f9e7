package widgets

import (
	"context"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

// franchises are browsed either as a TMDB collection (fixed film series) or
// by production company via discover (open-ended universes).
var franchises = []struct {
	ID      string
	Title   string
	Locator string
}{
	{"marvel", "Marvel Cinematic Universe", "discover/movie?with_companies=420&sort_by=popularity.desc"},
	{"dc", "DC Universe", "discover/movie?with_companies=128064&sort_by=popularity.desc"},
	{"starwars", "Star Wars", "collection/10"},
	{"harrypotter", "Harry Potter", "collection/1241"},
	{"lotr", "Lord of the Rings", "collection/119"},
	{"jamesbond", "James Bond", "collection/645"},
	{"fastfurious", "Fast & Furious", "collection/9485"},
}

func (s *service) franchiseWidget() Widget {
	modules := make([]Module, 0, len(franchises))
	for _, franchise := range franchises {
		franchise := franchise
		modules = append(modules, Module{
			ID:     franchise.ID,
			Title:  franchise.Title,
			Params: []Param{languageParam},
			Handler: func(ctx context.Context, args Args) (any, error) {
				cat := models.CatalogDescriptor{
					ID:      "franchise." + franchise.ID,
					Name:    franchise.Title,
					Kind:    models.KindMovie,
					Source:  models.SourceTMDB,
					Locator: franchise.Locator,
				}
				return s.fetchCatalog(ctx, cat, args)
			},
		})
	}

	return Widget{
		ID:          "franchise",
		Title:       "Franchise Browser",
		Version:     "1.0.0",
		Description: "Browse major cinematic universes and franchises.",
		Site:        "https://themoviedb.org",
		Modules:     modules,
	}
}
