// Package testutil provides canned upstream responses and fake servers
// shared by tests across packages.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Canned TMDB payloads.
const (
	// GameOfThronesFind is a find-by-IMDb response where the match sits in
	// the tv bucket.
	GameOfThronesFind = `{
		"movie_results": [],
		"tv_results": [{
			"id": 1399,
			"name": "Game of Thrones",
			"original_name": "Game of Thrones",
			"overview": "Seven noble families fight for control of the mythical land of Westeros.",
			"poster_path": "/p.jpg",
			"backdrop_path": "/b.jpg",
			"vote_average": 8.4,
			"vote_count": 21000,
			"first_air_date": "2011-04-17"
		}]
	}`

	// InceptionDetail is a movie detail response.
	InceptionDetail = `{
		"id": 27205,
		"title": "Inception",
		"original_title": "Inception",
		"overview": "A thief who steals corporate secrets through dream-sharing technology.",
		"poster_path": "/inception.jpg",
		"backdrop_path": "/inception-b.jpg",
		"vote_average": 8.3,
		"vote_count": 34000,
		"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
		"release_date": "2010-07-16"
	}`

	// TrendingMovies is a paged TMDB list response.
	TrendingMovies = `{
		"page": 1,
		"results": [
			{"id": 27205, "title": "Inception", "overview": "Dreams.", "poster_path": "/inception.jpg", "vote_average": 8.3, "release_date": "2010-07-16"},
			{"id": 603, "title": "The Matrix", "overview": "Simulation.", "poster_path": "/matrix.jpg", "vote_average": 8.2, "release_date": "1999-03-30"}
		]
	}`
)

// TMDBFixture maps request paths (relative, no leading slash, no query) to
// JSON bodies served by the fake TMDB server.
type TMDBFixture struct {
	// Finds maps IMDb ids to find-endpoint bodies.
	Finds map[string]string
	// Details maps "movie/27205"-style paths to detail bodies.
	Details map[string]string
	// Lists maps list paths ("trending/movie/day") to list bodies.
	Lists map[string]string
}

// NewTMDBServer starts a fake TMDB API server backed by the fixture.
// Requests without an api_key query parameter get a 401; unmatched paths get
// a 404, which is how the real API behaves for unknown ids.
func NewTMDBServer(t *testing.T, fx TMDBFixture) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		if imdbID, ok := strings.CutPrefix(path, "find/"); ok {
			if body, found := fx.Finds[imdbID]; found {
				_, _ = w.Write([]byte(body))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if body, found := fx.Details[path]; found {
			_, _ = w.Write([]byte(body))
			return
		}
		if body, found := fx.Lists[path]; found {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

// StremioCatalog builds a Stremio catalog body from meta JSON fragments.
func StremioCatalog(metas ...string) string {
	return `{"metas":[` + strings.Join(metas, ",") + `]}`
}
