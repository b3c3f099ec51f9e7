package widgets

import (
	"context"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

var traktLists = []struct {
	ID      string
	Title   string
	Kind    models.MediaKind
	Locator string
}{
	{"trending-movies", "Trending Movies", models.KindMovie, "movies/trending"},
	{"trending-shows", "Trending Shows", models.KindTV, "shows/trending"},
	{"popular-movies", "Popular Movies", models.KindMovie, "movies/popular"},
	{"popular-shows", "Popular Shows", models.KindTV, "shows/popular"},
}

func (s *service) traktWidget() Widget {
	modules := make([]Module, 0, len(traktLists))
	for _, list := range traktLists {
		list := list
		modules = append(modules, Module{
			ID:    list.ID,
			Title: list.Title,
			Params: []Param{
				{Name: "page", Title: "Page", Type: "page"},
				languageParam,
			},
			Handler: func(ctx context.Context, args Args) (any, error) {
				cat := models.CatalogDescriptor{
					ID:      "trakt." + list.ID,
					Name:    list.Title,
					Kind:    list.Kind,
					Source:  models.SourceTrakt,
					Locator: list.Locator,
				}
				return s.fetchCatalog(ctx, cat, args)
			},
		})
	}

	return Widget{
		ID:          "trakt",
		Title:       "Trakt",
		Version:     "1.0.0",
		Description: "Trending and popular lists from Trakt.",
		Site:        "https://trakt.tv",
		Modules:     modules,
	}
}
