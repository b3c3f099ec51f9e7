// Package server exposes the widget registry over HTTP: a metadata listing
// and one invocation endpoint per widget module.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/metrics"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/widgets"
)

type Server struct {
	registry *widgets.Registry
	logger   zerolog.Logger
}

func New(registry *widgets.Registry) *Server {
	return &Server{
		registry: registry,
		logger:   config.GetLogger(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/widgets", s.handleListing).Methods(http.MethodGet)
	r.HandleFunc("/widgets/{widget}/{module}", s.handleModule).Methods(http.MethodGet)
	return r
}

// NewHTTPServer wraps the router in an http.Server bound to the configured
// address.
func NewHTTPServer(cfg *config.Config, registry *widgets.Registry) *http.Server {
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, port),
		Handler:           New(registry).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.Widgets())
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	widgetID, moduleID := vars["widget"], vars["module"]

	module, err := s.registry.Lookup(widgetID, moduleID)
	if err != nil {
		s.writeError(w, widgetID, moduleID, err)
		return
	}

	result, err := module.Handler(r.Context(), parseArgs(r))
	if err != nil {
		s.writeError(w, widgetID, moduleID, err)
		return
	}

	metrics.WidgetRequestsTotal.WithLabelValues(widgetID, moduleID, "success").Inc()
	s.writeJSON(w, http.StatusOK, result)
}

// parseArgs maps query parameters onto handler arguments. Handlers only
// read the fields their params declare, so unused fields are harmless.
func parseArgs(r *http.Request) widgets.Args {
	query := r.URL.Query()
	args := widgets.Args{
		Language: query.Get("language"),
		Keywords: query.Get("keywords"),
		ListURL:  query.Get("url"),
		AddonURL: query.Get("addonUrl"),
		IMDBID:   query.Get("imdbId"),
		TMDBID:   query.Get("tmdbId"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		args.Page = page
	}
	if season, err := strconv.Atoi(query.Get("season")); err == nil {
		args.Season = season
	}
	if episode, err := strconv.Atoi(query.Get("episode")); err == nil {
		args.Episode = episode
	}
	if kind := query.Get("type"); kind != "" {
		args.Kind = models.ParseKind(kind)
	}
	return args
}

// writeError maps the error taxonomy to status codes: configuration errors
// are the caller's to fix (400), unknown widgets/catalogs are 404, and an
// upstream failure with no merge boundary to absorb it is a bad gateway.
func (s *Server) writeError(w http.ResponseWriter, widgetID, moduleID string, err error) {
	status := http.StatusInternalServerError

	var missing *apperrors.ErrMissingConfig
	var notFound *apperrors.ErrCatalogNotFound
	var upstream *apperrors.ErrUpstream
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("widget", widgetID).Str("module", moduleID).Msg("Module invocation failed")
	}
	metrics.WidgetRequestsTotal.WithLabelValues(widgetID, moduleID, "error").Inc()
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Response encoding failed")
	}
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}
