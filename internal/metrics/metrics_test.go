package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewHTTPServer_ServesMetrics(t *testing.T) {
	ResolutionsTotal.WithLabelValues("resolved").Inc()
	SourceFetchesTotal.WithLabelValues("stremio", "ok").Inc()

	srv := NewHTTPServer("", 0)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	text := string(body)

	if !strings.Contains(text, "item_resolutions_total") {
		t.Error("Expected item_resolutions_total in metrics output")
	}
	if !strings.Contains(text, "source_fetches_total") {
		t.Error("Expected source_fetches_total in metrics output")
	}
}

func TestNewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("", 0)
	if srv.Addr != ":9090" {
		t.Errorf("Expected default port 9090, got %s", srv.Addr)
	}
}
