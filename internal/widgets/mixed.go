package widgets

import (
	"context"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
)

// providerPairs maps each streaming provider to its movie|series catalog
// pair, interleaved into one mixed view.
var providerPairs = []struct {
	Title string
	Value string
}{
	{"Netflix (Movies & TV)", "mdblist.86628|mdblist.86620"},
	{"Apple TV+ (Movies & TV)", "mdblist.86626|mdblist.86625"},
	{"Disney+ (Movies & TV)", "mdblist.86945|mdblist.86946"},
	{"Hulu (Movies & TV)", "mdblist.88326|mdblist.88327"},
	{"Paramount+ (Movies & TV)", "mdblist.89366|mdblist.89374"},
	{"Peacock (Movies & TV)", "mdblist.83487|mdblist.83484"},
	{"Amazon Prime (Movies & TV)", "mdblist.86755|mdblist.86753"},
}

func (s *service) mixedWidget() Widget {
	modules := make([]Module, 0, len(providerPairs))
	for _, pair := range providerPairs {
		pair := pair
		modules = append(modules, Module{
			ID:     strings.SplitN(pair.Value, "|", 2)[0] + ".mixed",
			Title:  pair.Title,
			Params: []Param{languageParam},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchMixed(ctx, args, pair.Value)
			},
		})
	}

	return Widget{
		ID:          "mixed",
		Title:       "Mixed Movies & TV",
		Version:     "1.0.0",
		Description: "Interleaved movie and TV lists from one provider.",
		Site:        "https://stremio.com",
		Modules:     modules,
	}
}

// fetchMixed fetches the movie and series catalogs of a provider pair in
// parallel and interleaves them round-robin.
func (s *service) fetchMixed(ctx context.Context, args Args, pair string) ([]models.OutputItem, error) {
	ids := strings.SplitN(pair, "|", 2)
	if len(ids) != 2 {
		return nil, apperrors.NewMissingConfigError("Provider pair must be movieID|seriesID.")
	}
	movieCat, ok := findCatalog(ids[0])
	if !ok {
		return nil, apperrors.NewCatalogNotFoundError(ids[0])
	}
	seriesCat, ok := findCatalog(ids[1])
	if !ok {
		return nil, apperrors.NewCatalogNotFoundError(ids[1])
	}

	lists := pipeline.FetchAll(ctx, []models.CatalogDescriptor{movieCat, seriesCat}, s.catalogFetch(args))
	return pipeline.Interleave(lists[0], lists[1]), nil
}
