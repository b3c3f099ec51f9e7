// Package widgets defines the browsable catalog views served to the player:
// each widget groups modules, each module binds request parameters to a
// handler producing items, sections, streams, or intro timestamps.
package widgets

import (
	"context"
	"net/http"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/introdb"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/pipeline"
	"github.com/inchstudio/forward-catalogs/internal/sources"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
)

// Param describes one configurable input of a module, mirrored in the
// metadata listing so clients can render a settings form.
type Param struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Args carries the normalized request parameters handed to a handler.
// Handlers read only the fields their params declare.
type Args struct {
	Language string
	Page     int
	Keywords string
	ListURL  string
	AddonURL string
	IMDBID   string
	TMDBID   string
	Kind     models.MediaKind
	Season   int
	Episode  int
}

// Handler executes one module. The result is one of []models.OutputItem,
// []models.Section, []models.Stream, or *models.IntroTimestamps, and is
// serialized as-is.
type Handler func(ctx context.Context, args Args) (any, error)

// Module is one callable operation of a widget.
type Module struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type,omitempty"`
	SectionMode bool    `json:"sectionMode,omitempty"`
	Params      []Param `json:"params,omitempty"`

	Handler Handler `json:"-"`
}

// Widget groups modules under one id with display metadata.
type Widget struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Site        string   `json:"site,omitempty"`
	Modules     []Module `json:"modules"`
}

// Registry holds every widget and resolves module lookups.
type Registry struct {
	widgets []Widget
	index   map[string]map[string]Module
}

// service carries the shared collaborators handlers close over.
type service struct {
	cfg       *config.Config
	sources   *sources.Registry
	scheduler *pipeline.Scheduler
	tmdb      tmdb.Client
	introdb   *introdb.Client
	http      *http.Client
	batchSize int
	maxItems  int
}

// NewRegistry assembles every widget against the given collaborators.
func NewRegistry(cfg *config.Config, src *sources.Registry, scheduler *pipeline.Scheduler, tmdbClient tmdb.Client, introClient *introdb.Client, httpClient *http.Client) *Registry {
	s := &service{
		cfg:       cfg,
		sources:   src,
		scheduler: scheduler,
		tmdb:      tmdbClient,
		introdb:   introClient,
		http:      httpClient,
		batchSize: cfg.Enrich.BatchSize,
		maxItems:  cfg.Enrich.MaxItems,
	}

	r := &Registry{index: make(map[string]map[string]Module)}
	r.add(s.aioWidget())
	r.add(s.mixedWidget())
	r.add(s.sectionsWidget())
	r.add(s.mdblistWidget())
	r.add(s.traktWidget())
	r.add(s.franchiseWidget())
	r.add(s.globalTourWidget())
	r.add(s.streamsWidget())
	r.add(s.introWidget())
	return r
}

func (r *Registry) add(w Widget) {
	r.widgets = append(r.widgets, w)
	modules := make(map[string]Module, len(w.Modules))
	for _, m := range w.Modules {
		modules[m.ID] = m
	}
	r.index[w.ID] = modules
}

// Widgets returns the full metadata listing.
func (r *Registry) Widgets() []Widget {
	return r.widgets
}

// Lookup resolves a widget/module pair.
func (r *Registry) Lookup(widgetID, moduleID string) (*Module, error) {
	modules, ok := r.index[widgetID]
	if !ok {
		return nil, apperrors.NewCatalogNotFoundError(widgetID)
	}
	module, ok := modules[moduleID]
	if !ok {
		return nil, apperrors.NewCatalogNotFoundError(widgetID + "/" + moduleID)
	}
	return &module, nil
}

// language picks the request language, falling back to the configured
// default.
func (s *service) language(args Args) string {
	fallback := s.cfg.TMDB.Language
	if fallback == "" {
		fallback = "en-US"
	}
	return sources.NormalizeLanguage(args.Language, fallback)
}

// fetchCatalog fetches one catalog and formats its items. Catalogs whose
// rows come straight from TMDB are already canonical and skip enrichment;
// everything else runs through the resolution pipeline under the batch cap.
func (s *service) fetchCatalog(ctx context.Context, cat models.CatalogDescriptor, args Args) ([]models.OutputItem, error) {
	language := s.language(args)
	raws, err := s.sources.Fetch(ctx, cat, sources.Query{Page: args.Page, Language: language})
	if err != nil {
		return nil, err
	}
	raws = pipeline.Truncate(raws, s.maxItems)

	if cat.Source == models.SourceTMDB {
		items := make([]models.OutputItem, 0, len(raws))
		for _, raw := range raws {
			items = append(items, pipeline.Format(raw, nil))
		}
		return items, nil
	}
	return s.scheduler.ResolveAll(ctx, raws, s.batchSize, language), nil
}

// catalogFetch adapts fetchCatalog to the merger's fetch signature.
func (s *service) catalogFetch(args Args) pipeline.CatalogFetch {
	return func(ctx context.Context, cat models.CatalogDescriptor) ([]models.OutputItem, error) {
		return s.fetchCatalog(ctx, cat, args)
	}
}

var languageParam = Param{Name: "language", Title: "Language", Type: "language", Value: "en-US"}
