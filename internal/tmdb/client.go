package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/cache"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

// callTimeout bounds a single TMDB lookup. A stalled call otherwise delays
// its whole enrichment chunk.
const callTimeout = 10 * time.Second

// Client queries the TMDB API. Detail and find lookups are cached; list
// lookups (trending, discover) are not, since their content rotates.
type Client interface {
	// Find resolves an IMDb id via find-by-external-id.
	Find(ctx context.Context, imdbID, language string) (*FindResult, error)

	// Detail fetches the canonical record for a TMDB id of the given kind.
	Detail(ctx context.Context, kind models.MediaKind, id, language string) (*models.CanonicalRecord, error)

	// List fetches a TMDB list endpoint (e.g. "trending/movie/day",
	// "discover/movie", "collection/10") and returns its records.
	List(ctx context.Context, path string, params url.Values, language string) ([]models.CanonicalRecord, error)
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      cache.Cache
	timeout    timeout.Timeout[[]byte]
}

// NewClient creates a TMDB client. The cache may be nil, in which case every
// lookup goes to the network.
func NewClient(cfg *config.Config, httpClient *http.Client, c cache.Cache) Client {
	baseURL := cfg.TMDB.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultTMDBBaseURL
	}
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.TMDB.APIKey,
		httpClient: httpClient,
		cache:      c,
		timeout:    timeout.With[[]byte](callTimeout),
	}
}

func (c *client) Find(ctx context.Context, imdbID, language string) (*FindResult, error) {
	cacheKey := fmt.Sprintf("tmdb:find:%s:%s", imdbID, language)

	var result FindResult
	if cache.GetJSON(c.cache, cacheKey, &result) {
		return &result, nil
	}

	params := url.Values{"external_source": {"imdb_id"}}
	body, err := c.get(ctx, "find/"+url.PathEscape(imdbID), params, language)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.NewUpstreamError("tmdb", "find/"+imdbID, err)
	}

	cache.SetJSON(c.cache, cacheKey, &result)
	return &result, nil
}

func (c *client) Detail(ctx context.Context, kind models.MediaKind, id, language string) (*models.CanonicalRecord, error) {
	cacheKey := fmt.Sprintf("tmdb:detail:%s:%s:%s", kind, id, language)

	var record models.CanonicalRecord
	if cache.GetJSON(c.cache, cacheKey, &record) {
		return &record, nil
	}

	path := fmt.Sprintf("%s/%s", kind, url.PathEscape(id))
	body, err := c.get(ctx, path, nil, language)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, apperrors.NewUpstreamError("tmdb", path, err)
	}

	cache.SetJSON(c.cache, cacheKey, &record)
	return &record, nil
}

func (c *client) List(ctx context.Context, path string, params url.Values, language string) ([]models.CanonicalRecord, error) {
	body, err := c.get(ctx, path, params, language)
	if err != nil {
		return nil, err
	}

	var result listResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.NewUpstreamError("tmdb", path, err)
	}
	return result.records(), nil
}

// get issues one GET against the TMDB API under a failsafe timeout policy.
func (c *client) get(ctx context.Context, path string, params url.Values, language string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, apperrors.NewMissingConfigError("TMDB API Key required.")
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("api_key", c.apiKey)
	if language != "" {
		query.Set("language", language)
	}
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	return failsafe.Get(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, apperrors.NewUpstreamError("tmdb", requestURL, err)
		}
		req.Header.Set("User-Agent", config.GetUserAgent())
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.NewUpstreamError("tmdb", requestURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, apperrors.NewUpstreamStatusError("tmdb", requestURL, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperrors.NewUpstreamError("tmdb", requestURL, err)
		}
		return body, nil
	}, c.timeout)
}
