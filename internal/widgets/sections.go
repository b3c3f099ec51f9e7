package widgets

import (
	"context"

	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
)

// sectionGroups are the labeled home-screen style views: each module
// renders one section per catalog, dropping catalogs that fail or come
// back empty.
var sectionGroups = []struct {
	ID       string
	Title    string
	Catalogs []string
}{
	{"streaming-movies", "Streaming Movies", []string{"mdblist.86628", "mdblist.86945", "mdblist.86626", "mdblist.86755"}},
	{"streaming-shows", "Streaming Shows", []string{"mdblist.86620", "mdblist.86946", "mdblist.86625", "mdblist.86753"}},
	{"genre-corner", "Genre Corner", []string{"mdblist.91211", "mdblist.91223", "mdblist.91215", "mdblist.116037"}},
	{"trending-now", "Trending Now", []string{"tmdb.trending.movie", "tmdb.trending.tv", "mdblist.87667", "mdblist.88434"}},
}

func (s *service) sectionsWidget() Widget {
	modules := make([]Module, 0, len(sectionGroups))
	for _, group := range sectionGroups {
		group := group
		modules = append(modules, Module{
			ID:          group.ID,
			Title:       group.Title,
			SectionMode: true,
			Params:      []Param{languageParam},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchSections(ctx, args, group.Catalogs)
			},
		})
	}

	return Widget{
		ID:          "sections",
		Title:       "Sections",
		Version:     "1.0.0",
		Description: "Labeled multi-catalog views.",
		Modules:     modules,
	}
}

func (s *service) fetchSections(ctx context.Context, args Args, ids []string) ([]models.Section, error) {
	cats := make([]models.CatalogDescriptor, 0, len(ids))
	for _, id := range ids {
		if cat, ok := findCatalog(id); ok {
			cats = append(cats, cat)
		}
	}
	return pipeline.Sections(ctx, cats, s.catalogFetch(args)), nil
}
