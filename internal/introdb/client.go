// Package introdb looks up skip-intro timestamps for episodes. Lookups are
// best effort: the widget renders "no intro data" for anything the service
// does not know, so failures degrade to a null result instead of an error.
package introdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/cache"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

const DefaultBaseURL = "https://api.introdb.app"

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	logger     zerolog.Logger
}

// NewClient creates an IntroDB client. The cache may be nil, in which case
// every lookup goes to the network.
func NewClient(cfg *config.Config, httpClient *http.Client, c cache.Cache) *Client {
	baseURL := cfg.IntroDB.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      c,
		logger:     config.GetLogger(),
	}
}

// sourceLabel tags timestamps for the player UI.
const sourceLabel = "IntroDB"

type introResponse struct {
	StartMS    int64   `json:"start_ms"`
	EndMS      int64   `json:"end_ms"`
	Confidence float64 `json:"confidence"`
}

// cachedIntro is the cache envelope; Found distinguishes a cached negative
// lookup from a cache miss.
type cachedIntro struct {
	Found bool          `json:"found"`
	Intro introResponse `json:"intro"`
}

// Timestamps returns the skip-intro window for one episode, or nil when the
// episode is unknown, the id is missing, or the lookup fails. Known results,
// including negative ones, are cached.
func (c *Client) Timestamps(ctx context.Context, imdbID string, season, episode int) *models.IntroTimestamps {
	if imdbID == "" || models.ClassifyID(imdbID) != models.IDIMDb {
		return nil
	}

	cacheKey := fmt.Sprintf("introdb:%s:%d:%d", imdbID, season, episode)
	var envelope cachedIntro
	if cache.GetJSON(c.cache, cacheKey, &envelope) {
		return envelope.timestamps()
	}

	params := url.Values{}
	params.Set("imdb_id", imdbID)
	params.Set("season", strconv.Itoa(season))
	params.Set("episode", strconv.Itoa(episode))

	var response introResponse
	err := client.GetJSON(ctx, c.httpClient, "introdb", c.baseURL+"/intro", params, nil, &response)
	if err != nil {
		var upstream *apperrors.ErrUpstream
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			// Unknown episode. Cache the miss so repeats stay local.
			cache.SetJSON(c.cache, cacheKey, cachedIntro{Found: false})
			return nil
		}
		c.logger.Debug().Err(err).Str("imdb", imdbID).Msg("Intro lookup failed")
		return nil
	}

	envelope = cachedIntro{Found: true, Intro: response}
	cache.SetJSON(c.cache, cacheKey, envelope)
	return envelope.timestamps()
}

func (e cachedIntro) timestamps() *models.IntroTimestamps {
	if !e.Found {
		return nil
	}
	return &models.IntroTimestamps{
		Start:      e.Intro.StartMS,
		End:        e.Intro.EndMS,
		Confidence: e.Intro.Confidence,
		Source:     sourceLabel,
	}
}
