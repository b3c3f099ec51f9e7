package sources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

// stremioAdapter serves catalogs exposed by a Stremio addon:
// {base}/catalog/{type}/{id}.json returning a metas array. The locator is
// the addon's catalog id.
type stremioAdapter struct {
	baseURL    string
	httpClient *http.Client
}

func newStremioAdapter(baseURL string, httpClient *http.Client) *stremioAdapter {
	return &stremioAdapter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type stremioMeta struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Poster      string    `json:"poster"`
	Background  string    `json:"background"`
	IMDBRating  flexFloat `json:"imdbRating"`
	ReleaseInfo string    `json:"releaseInfo"`
}

type stremioCatalog struct {
	Metas []stremioMeta `json:"metas"`
}

func (a *stremioAdapter) Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error) {
	if a.baseURL == "" {
		return nil, apperrors.NewMissingConfigError("Stremio addon base URL required.")
	}

	requestURL := fmt.Sprintf("%s/catalog/%s/%s.json", a.baseURL, cat.Kind.StremioType(), cat.Locator)
	if q.page() > 1 {
		skip := (q.page() - 1) * q.limit(defaultPageSize)
		requestURL = fmt.Sprintf("%s/catalog/%s/%s/skip=%d.json", a.baseURL, cat.Kind.StremioType(), cat.Locator, skip)
	}

	var catalog stremioCatalog
	if err := client.GetJSON(ctx, a.httpClient, string(models.SourceStremio), requestURL, nil, nil, &catalog); err != nil {
		return nil, err
	}

	raws := make([]models.RawItem, 0, len(catalog.Metas))
	for _, meta := range catalog.Metas {
		if meta.ID == "" {
			continue
		}
		// The meta's own type tag wins over the catalog's declared kind;
		// addons do mix types in a single catalog.
		kind := cat.Kind
		if meta.Type != "" {
			kind = models.ParseKind(meta.Type)
		}
		raws = append(raws, models.RawItem{
			NativeID:     meta.ID,
			Kind:         kind,
			Title:        meta.Name,
			Description:  meta.Description,
			PosterPath:   meta.Poster,
			BackdropPath: meta.Background,
			Rating:       float64(meta.IMDBRating),
			ReleaseDate:  meta.ReleaseInfo,
		})
	}
	return raws, nil
}

// flexFloat tolerates upstreams that serialize ratings as either a JSON
// number or a quoted string ("8.4", "N/A").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(value)
	return nil
}
