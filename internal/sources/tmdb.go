package sources

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
)

// tmdbAdapter serves catalogs whose locator is a TMDB list path, optionally
// with query parameters baked in ("trending/movie/day",
// "discover/movie?with_companies=420&sort_by=primary_release_date.desc",
// "collection/1241").
type tmdbAdapter struct {
	client tmdb.Client
}

func (a *tmdbAdapter) Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error) {
	path := cat.Locator
	params := url.Values{}
	if idx := strings.IndexByte(cat.Locator, '?'); idx >= 0 {
		path = cat.Locator[:idx]
		parsed, err := url.ParseQuery(cat.Locator[idx+1:])
		if err == nil {
			params = parsed
		}
	}
	params.Set("page", strconv.Itoa(q.page()))

	records, err := a.client.List(ctx, path, params, q.Language)
	if err != nil {
		return nil, err
	}

	// Collections come back in arbitrary part order; present them
	// chronologically.
	if strings.HasPrefix(path, "collection/") {
		sortByReleaseDate(records)
	}

	raws := make([]models.RawItem, 0, len(records))
	for _, rec := range records {
		kind := cat.Kind
		if rec.MediaTypeTag != "" {
			kind = models.ParseKind(rec.MediaTypeTag)
		}
		raws = append(raws, models.RawItem{
			NativeID:     strconv.FormatInt(rec.ID, 10),
			Kind:         kind,
			Title:        rec.BestTitle(),
			Description:  rec.Overview,
			PosterPath:   rec.PosterPath,
			BackdropPath: rec.BackdropPath,
			Rating:       rec.VoteAverage,
			ReleaseDate:  rec.BestReleaseDate(),
			FallbackType: "tmdb",
		})
	}
	return raws, nil
}

func sortByReleaseDate(records []models.CanonicalRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].BestReleaseDate(), records[j].BestReleaseDate()
		// Unreleased parts have no date and sort last.
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
}
