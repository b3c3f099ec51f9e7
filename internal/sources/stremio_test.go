package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/testutil"
)

func TestStremioAdapter_CatalogMetas(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.StremioCatalog(
			`{"id":"tt0944947","type":"series","name":"Game of Thrones","description":"Seven kingdoms.","poster":"https://img/p.jpg","background":"https://img/b.jpg","imdbRating":"9.2","releaseInfo":"2011-2019"}`,
			`{"id":"tt1375666","type":"movie","name":"Inception","imdbRating":8.8}`,
			`{"type":"movie","name":"no id, dropped"}`,
		)))
	}))
	defer server.Close()

	a := newStremioAdapter(server.URL, server.Client())
	raws, err := a.Fetch(context.Background(), models.CatalogDescriptor{
		Kind: models.KindTV, Source: models.SourceStremio, Locator: "aio.popular",
	}, Query{})
	if err != nil {
		t.Fatal(err)
	}

	if requestedPath != "/catalog/series/aio.popular.json" {
		t.Errorf("Unexpected request path %q", requestedPath)
	}
	if len(raws) != 2 {
		t.Fatalf("Expected 2 items (id-less meta dropped), got %d", len(raws))
	}
	got := raws[0]
	if got.NativeID != "tt0944947" || got.Kind != models.KindTV {
		t.Errorf("Unexpected first item %+v", got)
	}
	if got.Rating != 9.2 {
		t.Errorf("String imdbRating should coerce to 9.2, got %v", got.Rating)
	}
	if got.Title != "Game of Thrones" || got.Description != "Seven kingdoms." ||
		got.PosterPath != "https://img/p.jpg" || got.BackdropPath != "https://img/b.jpg" ||
		got.ReleaseDate != "2011-2019" {
		t.Errorf("Meta fields should carry over, got %+v", got)
	}
	// The meta declares movie even though the catalog is a series catalog.
	if raws[1].Kind != models.KindMovie || raws[1].Rating != 8.8 {
		t.Errorf("Per-meta type tag should win, got %+v", raws[1])
	}
}

func TestStremioAdapter_SkipPagination(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(testutil.StremioCatalog()))
	}))
	defer server.Close()

	a := newStremioAdapter(server.URL, server.Client())
	_, err := a.Fetch(context.Background(), models.CatalogDescriptor{
		Kind: models.KindMovie, Source: models.SourceStremio, Locator: "aio.trending",
	}, Query{Page: 3, Limit: 20})
	if err != nil {
		t.Fatal(err)
	}

	if requestedPath != "/catalog/movie/aio.trending/skip=40.json" {
		t.Errorf("Expected skip path for page 3, got %q", requestedPath)
	}
}

func TestStremioAdapter_MissingBaseURL(t *testing.T) {
	a := newStremioAdapter("", http.DefaultClient)
	_, err := a.Fetch(context.Background(), models.CatalogDescriptor{
		Kind: models.KindMovie, Source: models.SourceStremio, Locator: "aio.trending",
	}, Query{})

	var missing *apperrors.ErrMissingConfig
	if !errors.As(err, &missing) {
		t.Fatalf("Expected ErrMissingConfig, got %v", err)
	}
}

func TestStremioAdapter_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	a := newStremioAdapter(server.URL, server.Client())
	_, err := a.Fetch(context.Background(), models.CatalogDescriptor{
		Kind: models.KindMovie, Source: models.SourceStremio, Locator: "aio.trending",
	}, Query{})

	var upstream *apperrors.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502 in error, got %d", upstream.StatusCode)
	}
}
