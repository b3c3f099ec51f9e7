package widgets

import (
	"context"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
)

// aioCatalogs is the curated catalog table. TMDB entries go to the API
// directly; everything else is an MDBList list exposed through the AIO
// Stremio addon, whose item ids are IMDb ids enriched by the pipeline.
var aioCatalogs = []models.CatalogDescriptor{
	{ID: "tmdb.trending.movie", Name: "TMDB Trending Movies", Kind: models.KindMovie, Source: models.SourceTMDB, Locator: "trending/movie/day"},
	{ID: "tmdb.trending.tv", Name: "TMDB Trending Shows", Kind: models.KindTV, Source: models.SourceTMDB, Locator: "trending/tv/day"},
	// Streaming providers
	{ID: "mdblist.86626", Name: "Top Movies - Apple TV+", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.86626"},
	{ID: "mdblist.86625", Name: "Top TV Shows - Apple TV+", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.86625"},
	{ID: "mdblist.4799", Name: "Discovery+", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.4799"},
	{ID: "mdblist.86945", Name: "Top Movies - Disney+", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.86945"},
	{ID: "mdblist.86946", Name: "Top TV Shows - Disney+", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.86946"},
	{ID: "mdblist.89392", Name: "Top Movies - HBO Max", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.89392"},
	{ID: "mdblist.89310", Name: "Top TV Shows - HBO Max", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.89310"},
	{ID: "mdblist.88326", Name: "Hulu Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.88326"},
	{ID: "mdblist.88327", Name: "Hulu Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.88327"},
	{ID: "mdblist.86628", Name: "Top Movies - Netflix", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.86628"},
	{ID: "mdblist.86620", Name: "Top TV Shows - Netflix", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.86620"},
	{ID: "mdblist.89366", Name: "Top Movies - Paramount+", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.89366"},
	{ID: "mdblist.89374", Name: "Top TV Shows - Paramount+", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.89374"},
	{ID: "mdblist.83487", Name: "Peacock Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.83487"},
	{ID: "mdblist.83484", Name: "Peacock Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.83484"},
	{ID: "mdblist.86755", Name: "Amazon Prime Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.86755"},
	{ID: "mdblist.86753", Name: "Amazon Prime Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.86753"},
	{ID: "mdblist.87667", Name: "Trakt Trending Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.87667"},
	{ID: "mdblist.88434", Name: "Trakt Trending Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.88434"},
	// Genres
	{ID: "mdblist.91211", Name: "Action Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.91211"},
	{ID: "mdblist.91213", Name: "Action Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.91213"},
	{ID: "mdblist.116037", Name: "Animated Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.116037"},
	{ID: "mdblist.91223", Name: "Comedy Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.91223"},
	{ID: "mdblist.91215", Name: "Horror Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.91215"},
	{ID: "mdblist.91221", Name: "Sci-Fi Shows", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.91221"},
	// Universes
	{ID: "mdblist.3022", Name: "Marvel Universe", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.3022"},
	{ID: "mdblist.3021", Name: "DC Universe", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.3021"},
	{ID: "mdblist.125115", Name: "Star Wars Universe", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.125115"},
	{ID: "mdblist.105063", Name: "Harry Potter", Kind: models.KindTV, Source: models.SourceStremio, Locator: "mdblist.105063"},
	// Eras
	{ID: "mdblist.91304", Name: "Popular 2020s Movies", Kind: models.KindMovie, Source: models.SourceStremio, Locator: "mdblist.91304"},
}

func findCatalog(id string) (models.CatalogDescriptor, bool) {
	for _, cat := range aioCatalogs {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.CatalogDescriptor{}, false
}

func (s *service) aioWidget() Widget {
	modules := []Module{
		{
			ID:    "merged-movies",
			Title: "Merged Movies",
			Params: []Param{
				{Name: "keywords", Title: "Keywords", Type: "input", Description: "e.g. 'Apple, Disney'. Merges matching movie lists."},
				languageParam,
			},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchMergedList(ctx, args, models.KindMovie)
			},
		},
		{
			ID:    "merged-shows",
			Title: "Merged TV Shows",
			Params: []Param{
				{Name: "keywords", Title: "Keywords", Type: "input", Description: "e.g. 'Apple, Disney'. Merges matching TV lists."},
				languageParam,
			},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchMergedList(ctx, args, models.KindTV)
			},
		},
	}

	for _, cat := range aioCatalogs {
		cat := cat
		modules = append(modules, Module{
			ID:     cat.ID,
			Title:  cat.Name,
			Params: []Param{languageParam},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchCatalog(ctx, cat, args)
			},
		})
	}

	return Widget{
		ID:          "aio-catalogs",
		Title:       "AIO Catalogs",
		Version:     "2.3.0",
		Description: "Browse curated lists plus custom keyword merges.",
		Site:        "https://mdblist.com",
		Modules:     modules,
	}
}

// fetchMergedList merges every catalog of the given kind whose name matches
// one of the comma-separated keywords, deduplicating by output id.
func (s *service) fetchMergedList(ctx context.Context, args Args, kind models.MediaKind) ([]models.OutputItem, error) {
	keywords := splitKeywords(args.Keywords)
	if len(keywords) == 0 {
		return nil, apperrors.NewMissingConfigError("Please enter keywords (e.g. Apple).")
	}

	var matching []models.CatalogDescriptor
	for _, cat := range aioCatalogs {
		if cat.Kind != kind {
			continue
		}
		name := strings.ToLower(cat.Name)
		for _, keyword := range keywords {
			if strings.Contains(name, keyword) {
				matching = append(matching, cat)
				break
			}
		}
	}
	if len(matching) == 0 {
		return nil, apperrors.NewMissingConfigError("No catalogs matched.")
	}

	lists := pipeline.FetchAll(ctx, matching, s.catalogFetch(args))
	return pipeline.MergeDedup(lists), nil
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(strings.ToLower(raw), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
