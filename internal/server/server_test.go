package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/introdb"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
	"github.com/inchstudio/forward-catalogs/internal/sources"
	"github.com/inchstudio/forward-catalogs/internal/testutil"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
	"github.com/inchstudio/forward-catalogs/internal/widgets"
)

func newTestServer(t *testing.T, fx testutil.TMDBFixture) *httptest.Server {
	t.Helper()

	tmdbServer := testutil.NewTMDBServer(t, fx)
	t.Cleanup(tmdbServer.Close)

	cfg := &config.Config{}
	cfg.TMDB.APIKey = "test-key"
	cfg.TMDB.BaseURL = tmdbServer.URL
	cfg.Enrich.BatchSize = 5
	cfg.Enrich.MaxItems = 50

	httpClient := http.DefaultClient
	tmdbClient := tmdb.NewClient(cfg, httpClient, nil)
	registry := widgets.NewRegistry(
		cfg,
		sources.NewRegistry(cfg, httpClient, tmdbClient),
		pipeline.NewScheduler(pipeline.NewResolver(tmdbClient)),
		tmdbClient,
		introdb.NewClient(cfg, httpClient, nil),
		httpClient,
	)

	server := httptest.NewServer(New(registry).Router())
	t.Cleanup(server.Close)
	return server
}

func TestListing(t *testing.T) {
	server := newTestServer(t, testutil.TMDBFixture{})

	resp, err := http.Get(server.URL + "/widgets")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var listing []struct {
		ID      string `json:"id"`
		Modules []struct {
			ID string `json:"id"`
		} `json:"modules"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	if len(listing) == 0 {
		t.Fatal("Expected a non-empty widget listing")
	}
	for _, w := range listing {
		if w.ID == "" || len(w.Modules) == 0 {
			t.Errorf("Incomplete widget entry %+v", w)
		}
	}
}

func TestModuleInvocation(t *testing.T) {
	server := newTestServer(t, testutil.TMDBFixture{
		Lists: map[string]string{"trending/movie/day": testutil.TrendingMovies},
	})

	resp, err := http.Get(server.URL + "/widgets/aio-catalogs/tmdb.trending.movie")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var items []models.OutputItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "27205" || items[0].Type != "tmdb" {
		t.Errorf("Unexpected items %+v", items)
	}
}

func TestErrorMapping(t *testing.T) {
	server := newTestServer(t, testutil.TMDBFixture{})

	cases := []struct {
		name string
		path string
		want int
	}{
		{"unknown widget", "/widgets/ghost/module", http.StatusNotFound},
		{"unknown module", "/widgets/aio-catalogs/ghost", http.StatusNotFound},
		{"missing keywords", "/widgets/aio-catalogs/merged-movies", http.StatusBadRequest},
		{"missing trakt credentials", "/widgets/trakt/trending-movies", http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + c.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != c.want {
				t.Errorf("Expected %d, got %d", c.want, resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Error("Expected a human-readable error message")
			}
		})
	}
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	// Global tour talks to TMDB directly with no merge boundary to absorb
	// the failure; the empty fixture 404s the discover path.
	server := newTestServer(t, testutil.TMDBFixture{})

	resp, err := http.Get(server.URL + "/widgets/global-tour/korea")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, testutil.TMDBFixture{})

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
