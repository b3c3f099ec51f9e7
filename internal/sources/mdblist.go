package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

// mdblistAdapter serves catalogs backed by an MDBList list. The locator is
// either the numeric list id or a list page URL
// (mdblist.com/lists/{user}/{slug}), which is resolved to the numeric id by
// scraping the page.
type mdblistAdapter struct {
	apiKey     string
	baseURL    string
	siteURL    string
	httpClient *http.Client
}

func newMDBListAdapter(apiKey, baseURL string, httpClient *http.Client) *mdblistAdapter {
	return &mdblistAdapter{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		siteURL:    "https://mdblist.com",
		httpClient: httpClient,
	}
}

type mdblistItem struct {
	TMDBID    int64   `json:"tmdb_id"`
	IMDBID    string  `json:"imdb_id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Score     float64 `json:"score"`
	Mediatype string  `json:"mediatype"`
}

func (a *mdblistAdapter) Fetch(ctx context.Context, cat models.CatalogDescriptor, q Query) ([]models.RawItem, error) {
	if a.apiKey == "" {
		return nil, apperrors.NewMissingConfigError("MDBList API Key required.")
	}

	listID := a.resolveListID(ctx, cat.Locator)
	limit := q.limit(defaultPageSize)
	offset := (q.page() - 1) * limit

	params := url.Values{}
	params.Set("apikey", a.apiKey)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var entries []mdblistItem
	requestURL := fmt.Sprintf("%s/lists/%s/items", a.baseURL, listID)
	if err := client.GetJSON(ctx, a.httpClient, string(models.SourceMDBList), requestURL, params, nil, &entries); err != nil {
		return nil, err
	}

	raws := make([]models.RawItem, 0, len(entries))
	for _, entry := range entries {
		raw := models.RawItem{
			Kind:   cat.Kind,
			Title:  entry.Title,
			Rating: entry.Score,
		}
		if entry.Mediatype != "" {
			raw.Kind = models.ParseKind(entry.Mediatype)
		}
		if entry.Year > 0 {
			raw.ReleaseDate = strconv.Itoa(entry.Year)
		}
		switch {
		case entry.TMDBID > 0:
			raw.NativeID = strconv.FormatInt(entry.TMDBID, 10)
			raw.FallbackType = "tmdb"
		case entry.IMDBID != "":
			raw.NativeID = entry.IMDBID
		default:
			continue
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

var (
	mdblistSlugPattern = regexp.MustCompile(`mdblist\.com/lists/([^/?#]+)/([^/?#]+)`)
	mdblistIDPattern   = regexp.MustCompile(`"?list[_-]?id"?\s*[:=]\s*"?(\d+)`)
)

// resolveListID turns a list page URL into the numeric list id used by the
// API. Resolution is best effort: any failure passes the locator through
// unchanged and lets the API call surface the real error.
func (a *mdblistAdapter) resolveListID(ctx context.Context, locator string) string {
	match := mdblistSlugPattern.FindStringSubmatch(locator)
	if match == nil {
		return locator
	}

	logger := config.GetLogger()
	pageURL := fmt.Sprintf("%s/lists/%s/%s", a.siteURL, match[1], match[2])
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return locator
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("url", pageURL).Msg("List page fetch failed, passing locator through")
		return locator
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Debug().Int("status", resp.StatusCode).Str("url", pageURL).Msg("List page fetch failed, passing locator through")
		return locator
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return locator
	}

	listID := locator
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := mdblistIDPattern.FindStringSubmatch(s.Text()); m != nil {
			listID = m[1]
			return false
		}
		return true
	})
	return listID
}
