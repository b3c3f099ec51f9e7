package widgets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/introdb"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
	"github.com/inchstudio/forward-catalogs/internal/sources"
	"github.com/inchstudio/forward-catalogs/internal/testutil"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
)

// testEnv wires a registry against fake upstream servers.
type testEnv struct {
	registry *Registry
	cfg      *config.Config
}

func newTestEnv(t *testing.T, fx testutil.TMDBFixture, stremioHandler http.HandlerFunc) *testEnv {
	t.Helper()

	tmdbServer := testutil.NewTMDBServer(t, fx)
	t.Cleanup(tmdbServer.Close)

	cfg := &config.Config{}
	cfg.TMDB.APIKey = "test-key"
	cfg.TMDB.BaseURL = tmdbServer.URL
	cfg.TMDB.Language = "en-US"
	cfg.Enrich.BatchSize = 5
	cfg.Enrich.MaxItems = 50

	if stremioHandler != nil {
		stremioServer := httptest.NewServer(stremioHandler)
		t.Cleanup(stremioServer.Close)
		cfg.Stremio.BaseURL = stremioServer.URL
	}

	httpClient := http.DefaultClient
	tmdbClient := tmdb.NewClient(cfg, httpClient, nil)
	src := sources.NewRegistry(cfg, httpClient, tmdbClient)
	scheduler := pipeline.NewScheduler(pipeline.NewResolver(tmdbClient))
	intro := introdb.NewClient(cfg, httpClient, nil)

	return &testEnv{
		registry: NewRegistry(cfg, src, scheduler, tmdbClient, intro, httpClient),
		cfg:      cfg,
	}
}

func (e *testEnv) run(t *testing.T, widgetID, moduleID string, args Args) (any, error) {
	t.Helper()
	module, err := e.registry.Lookup(widgetID, moduleID)
	if err != nil {
		t.Fatalf("Lookup(%s, %s): %v", widgetID, moduleID, err)
	}
	return module.Handler(context.Background(), args)
}

func TestRegistry_Listing(t *testing.T) {
	env := newTestEnv(t, testutil.TMDBFixture{}, nil)

	widgets := env.registry.Widgets()
	want := map[string]bool{
		"aio-catalogs": false, "mixed": false, "sections": false,
		"mdblist": false, "trakt": false, "franchise": false,
		"global-tour": false, "stremio-streams": false, "introdb": false,
	}
	for _, w := range widgets {
		if _, ok := want[w.ID]; !ok {
			t.Errorf("Unexpected widget %q", w.ID)
			continue
		}
		want[w.ID] = true
		if len(w.Modules) == 0 {
			t.Errorf("Widget %q has no modules", w.ID)
		}
	}
	for id, seen := range want {
		if !seen {
			t.Errorf("Widget %q missing from listing", id)
		}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	env := newTestEnv(t, testutil.TMDBFixture{}, nil)

	var notFound *apperrors.ErrCatalogNotFound
	if _, err := env.registry.Lookup("ghost", "module"); !errors.As(err, &notFound) {
		t.Errorf("Expected ErrCatalogNotFound for unknown widget, got %v", err)
	}
	if _, err := env.registry.Lookup("aio-catalogs", "ghost"); !errors.As(err, &notFound) {
		t.Errorf("Expected ErrCatalogNotFound for unknown module, got %v", err)
	}
}

func TestAIO_StremioCatalogEnriched(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{Finds: map[string]string{"tt0944947": testutil.GameOfThronesFind}},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/catalog/series/mdblist.86620.json" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(testutil.StremioCatalog(
				`{"id":"tt0944947","type":"series","name":"Game of Thrones (addon)","poster":"https://addon/p.jpg"}`,
			)))
		})

	result, err := env.run(t, "aio-catalogs", "mdblist.86620", Args{})
	if err != nil {
		t.Fatal(err)
	}
	items, ok := result.([]models.OutputItem)
	if !ok || len(items) != 1 {
		t.Fatalf("Expected one item, got %#v", result)
	}

	got := items[0]
	if got.ID != "1399" || got.Type != "tmdb" {
		t.Errorf("Expected resolved tmdb identity, got id=%q type=%q", got.ID, got.Type)
	}
	if got.Title != "Game of Thrones" || got.Rating != 8.4 || got.PosterPath != "/p.jpg" {
		t.Errorf("Canonical fields should win, got %+v", got)
	}
	if got.MediaType != "tv" {
		t.Errorf("Expected mediaType tv, got %q", got.MediaType)
	}
}

func TestAIO_TMDBCatalogDirect(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{Lists: map[string]string{"trending/movie/day": testutil.TrendingMovies}},
		nil)

	result, err := env.run(t, "aio-catalogs", "tmdb.trending.movie", Args{})
	if err != nil {
		t.Fatal(err)
	}
	items := result.([]models.OutputItem)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != "27205" || items[0].Type != "tmdb" || items[0].Title != "Inception" {
		t.Errorf("Unexpected first item %+v", items[0])
	}
}

func TestAIO_MergedList(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{Finds: map[string]string{"tt0944947": testutil.GameOfThronesFind}},
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/catalog/series/mdblist.86620.json": // Netflix shows
				w.Write([]byte(testutil.StremioCatalog(`{"id":"tt0944947","type":"series","name":"GoT"}`)))
			case "/catalog/series/mdblist.86946.json": // Disney+ shows, duplicate item
				w.Write([]byte(testutil.StremioCatalog(`{"id":"tt0944947","type":"series","name":"GoT again"}`)))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})

	result, err := env.run(t, "aio-catalogs", "merged-shows", Args{Keywords: "Netflix, Disney"})
	if err != nil {
		t.Fatal(err)
	}
	items := result.([]models.OutputItem)
	if len(items) != 1 {
		t.Fatalf("Expected duplicate collapsed to 1 item, got %d", len(items))
	}
	if items[0].ID != "1399" {
		t.Errorf("Expected resolved id 1399, got %q", items[0].ID)
	}
}

func TestAIO_MergedListErrors(t *testing.T) {
	env := newTestEnv(t, testutil.TMDBFixture{}, nil)

	var missing *apperrors.ErrMissingConfig
	if _, err := env.run(t, "aio-catalogs", "merged-movies", Args{}); !errors.As(err, &missing) {
		t.Fatalf("Expected ErrMissingConfig for empty keywords, got %v", err)
	}

	_, err := env.run(t, "aio-catalogs", "merged-movies", Args{Keywords: "nonexistent provider"})
	if !errors.As(err, &missing) || missing.Message != "No catalogs matched." {
		t.Fatalf("Expected 'No catalogs matched.', got %v", err)
	}
}

func TestMixed_Interleaves(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{},
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/catalog/movie/mdblist.86628.json":
				w.Write([]byte(testutil.StremioCatalog(
					`{"id":"tt0000001","type":"movie","name":"Movie One"}`,
					`{"id":"tt0000002","type":"movie","name":"Movie Two"}`,
				)))
			case "/catalog/series/mdblist.86620.json":
				w.Write([]byte(testutil.StremioCatalog(`{"id":"tt0000003","type":"series","name":"Show One"}`)))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})

	result, err := env.run(t, "mixed", "mdblist.86628.mixed", Args{})
	if err != nil {
		t.Fatal(err)
	}
	items := result.([]models.OutputItem)
	// Unresolvable ids fall back to raw fields but keep their slots.
	want := []string{"Movie One", "Show One", "Movie Two"}
	if len(items) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(items))
	}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("Slot %d: expected %q, got %q", i, title, items[i].Title)
		}
	}
}

func TestSections_DropsFailing(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{Lists: map[string]string{
			"trending/movie/day": testutil.TrendingMovies,
			"trending/tv/day":    `{"results": []}`,
		}},
		nil) // no stremio base: stremio catalogs fail and drop out

	result, err := env.run(t, "sections", "trending-now", Args{})
	if err != nil {
		t.Fatal(err)
	}
	sections := result.([]models.Section)
	if len(sections) != 1 {
		t.Fatalf("Expected only the movie section to survive, got %d", len(sections))
	}
	if sections[0].Title != "TMDB Trending Movies" || len(sections[0].Items) != 2 {
		t.Errorf("Unexpected section %+v", sections[0])
	}
}

func TestGlobalTour_GenreTitles(t *testing.T) {
	env := newTestEnv(t,
		testutil.TMDBFixture{Lists: map[string]string{
			"discover/movie": `{"results": [
				{"id": 496243, "title": "Parasite", "vote_average": 8.5, "release_date": "2019-05-30", "genre_ids": [35, 53, 18]}
			]}`,
		}},
		nil)

	result, err := env.run(t, "global-tour", "korea", Args{})
	if err != nil {
		t.Fatal(err)
	}
	items := result.([]models.OutputItem)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].GenreTitle != "Comedy, Thriller" {
		t.Errorf("Expected first two genres, got %q", items[0].GenreTitle)
	}
	if items[0].ID != "496243" || items[0].Type != "tmdb" || items[0].MediaType != "movie" {
		t.Errorf("Unexpected item identity %+v", items[0])
	}
}

func TestIntro_NilForMissingID(t *testing.T) {
	env := newTestEnv(t, testutil.TMDBFixture{}, nil)

	result, err := env.run(t, "introdb", "skip-intro", Args{})
	if err != nil {
		t.Fatal(err)
	}
	if ts, ok := result.(*models.IntroTimestamps); !ok || ts != nil {
		t.Errorf("Expected typed nil timestamps, got %#v", result)
	}
}
