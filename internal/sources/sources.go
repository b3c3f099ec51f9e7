package sources

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/metrics"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
)

// defaultPageSize bounds a single catalog page when the caller does not ask
// for a specific limit.
const defaultPageSize = 20

// Adapter fetches one catalog's raw items from its upstream. Each source
// type gets exactly one adapter; the response shape is decided here and
// nothing downstream re-inspects it.
type Adapter interface {
	Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error)
}

// Query carries the per-request knobs shared by all adapters.
type Query struct {
	// Page is 1-based; zero means the first page.
	Page int
	// Limit is the page size; zero means the adapter default.
	Limit int
	// Language is a BCP 47 tag for sources that localize.
	Language string
}

func (q Query) page() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

func (q Query) limit(def int) int {
	if q.Limit < 1 {
		return def
	}
	return q.Limit
}

// NormalizeLanguage canonicalizes a caller-supplied language tag ("EN-us"
// becomes "en-US"). Empty or unparseable tags fall back to the given default.
func NormalizeLanguage(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return fallback
	}
	return tag.String()
}

// Registry dispatches catalog fetches to the adapter registered for their
// source type. Adapters are wired once at startup from the config.
type Registry struct {
	adapters map[models.SourceType]Adapter
}

func NewRegistry(cfg *config.Config, httpClient *http.Client, tmdbClient tmdb.Client) *Registry {
	return &Registry{adapters: map[models.SourceType]Adapter{
		models.SourceTMDB:    &tmdbAdapter{client: tmdbClient},
		models.SourceStremio: newStremioAdapter(cfg.Stremio.BaseURL, httpClient),
		models.SourceMDBList: newMDBListAdapter(cfg.MDBList.APIKey, cfg.MDBList.BaseURL, httpClient),
		models.SourceTrakt:   newTraktAdapter(cfg.Trakt.ClientID, cfg.Trakt.BaseURL, httpClient),
	}}
}

// Fetch resolves the catalog's adapter and fetches its items, counting the
// outcome per source type.
func (r *Registry) Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error) {
	adapter, ok := r.adapters[cat.Source]
	if !ok {
		return nil, apperrors.NewCatalogNotFoundError(cat.ID)
	}

	raws, err := adapter.Fetch(ctx, cat, q)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SourceFetchesTotal.WithLabelValues(string(cat.Source), status).Inc()
	return raws, err
}
