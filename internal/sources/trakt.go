package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

// traktAdapter serves Trakt list endpoints. The locator is the list path
// ("movies/trending", "shows/popular"). Trending endpoints wrap the record
// in a movie/show envelope with a watchers count; popular endpoints return
// records directly, so both shapes are decoded from one entry type.
type traktAdapter struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
}

func newTraktAdapter(clientID, baseURL string, httpClient *http.Client) *traktAdapter {
	return &traktAdapter{
		clientID:   clientID,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type traktIDs struct {
	Trakt int64  `json:"trakt"`
	Slug  string `json:"slug"`
	IMDB  string `json:"imdb"`
	TMDB  int64  `json:"tmdb"`
}

type traktRecord struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Overview string   `json:"overview"`
	Rating   float64  `json:"rating"`
	IDs      traktIDs `json:"ids"`
}

type traktEntry struct {
	Watchers int64        `json:"watchers"`
	Movie    *traktRecord `json:"movie"`
	Show     *traktRecord `json:"show"`
	traktRecord
}

func (e *traktEntry) record() *traktRecord {
	if e.Movie != nil {
		return e.Movie
	}
	if e.Show != nil {
		return e.Show
	}
	return &e.traktRecord
}

func (a *traktAdapter) Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error) {
	if a.clientID == "" {
		return nil, apperrors.NewMissingConfigError("Trakt Client ID required.")
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.page()))
	params.Set("limit", strconv.Itoa(q.limit(defaultPageSize)))
	params.Set("extended", "full")
	headers := map[string]string{
		"trakt-api-key":     a.clientID,
		"trakt-api-version": "2",
	}

	var entries []traktEntry
	requestURL := fmt.Sprintf("%s/%s", a.baseURL, strings.TrimPrefix(cat.Locator, "/"))
	if err := client.GetJSON(ctx, a.httpClient, string(models.SourceTrakt), requestURL, params, headers, &entries); err != nil {
		return nil, err
	}

	raws := make([]models.RawItem, 0, len(entries))
	for i := range entries {
		rec := entries[i].record()
		// Items Trakt cannot map to TMDB are useless downstream.
		if rec.IDs.TMDB == 0 {
			continue
		}
		raw := models.RawItem{
			NativeID:     strconv.FormatInt(rec.IDs.TMDB, 10),
			Kind:         cat.Kind,
			Title:        rec.Title,
			Description:  rec.Overview,
			Rating:       rec.Rating,
			FallbackType: "tmdb",
		}
		if rec.Year > 0 {
			raw.ReleaseDate = strconv.Itoa(rec.Year)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
