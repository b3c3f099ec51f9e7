package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "secret" {
			t.Errorf("expected apikey query param, got %q", r.URL.Query().Get("apikey"))
		}
		if r.Header.Get("trakt-api-version") != "2" {
			t.Errorf("expected trakt-api-version header, got %q", r.Header.Get("trakt-api-version"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Inception","year":2010}`))
	}))
	defer server.Close()

	var out struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}
	params := url.Values{"apikey": {"secret"}}
	headers := map[string]string{"trakt-api-version": "2"}

	err := GetJSON(context.Background(), server.Client(), "test", server.URL, params, headers, &out)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if out.Title != "Inception" || out.Year != 2010 {
		t.Errorf("unexpected decoded value: %+v", out)
	}
}

func TestGetJSON_StringWrappedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// one level of string encoding around the actual document
		_, _ = w.Write([]byte(`"{\"metas\":[{\"id\":\"tt1\"}]}"`))
	}))
	defer server.Close()

	var out struct {
		Metas []struct {
			ID string `json:"id"`
		} `json:"metas"`
	}
	err := GetJSON(context.Background(), server.Client(), "stremio", server.URL, nil, nil, &out)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(out.Metas) != 1 || out.Metas[0].ID != "tt1" {
		t.Errorf("unexpected decoded value: %+v", out)
	}
}

func TestGetJSON_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := GetJSON(context.Background(), server.Client(), "mdblist", server.URL, nil, nil, &out)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var upstream *apperrors.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected ErrUpstream, got %T", err)
	}
	if upstream.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", upstream.StatusCode)
	}
	if upstream.Source != "mdblist" {
		t.Errorf("Expected source mdblist, got %q", upstream.Source)
	}
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	var out map[string]any
	err := GetJSON(context.Background(), server.Client(), "stremio", server.URL, nil, nil, &out)
	if err == nil {
		t.Fatal("Expected error for unparseable body")
	}
	if !errors.Is(err, &apperrors.ErrUpstream{}) {
		t.Fatalf("Expected ErrUpstream, got %T", err)
	}
}

func TestGetJSON_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	var out map[string]any
	err := GetJSON(context.Background(), http.DefaultClient, "trakt", server.URL, nil, nil, &out)
	if err == nil {
		t.Fatal("Expected error for refused connection")
	}
	if !errors.Is(err, &apperrors.ErrUpstream{}) {
		t.Fatalf("Expected ErrUpstream, got %T", err)
	}
}
