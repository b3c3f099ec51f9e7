package models

// SourceType tags which adapter serves a catalog. The shape decision is made
// once here; downstream code never duck-types responses.
type SourceType string

const (
	SourceTMDB    SourceType = "tmdb"
	SourceStremio SourceType = "stremio"
	SourceMDBList SourceType = "mdblist"
	SourceTrakt   SourceType = "trakt"
)

// CatalogDescriptor is the static configuration for one catalog: where its
// items come from and what kind they are declared to be. Descriptors are
// defined at process start and never mutated.
type CatalogDescriptor struct {
	// ID uniquely identifies the catalog across widgets (e.g. "mdblist.86628").
	ID string
	// Name is the display label, also used as the section title.
	Name string
	// Kind is the declared media kind for every item in the catalog.
	Kind MediaKind
	// Source selects the adapter.
	Source SourceType
	// Locator is the source-specific address: a TMDB path ("trending/movie/day"),
	// a Stremio catalog id, an MDBList numeric list id, or a Trakt list path
	// ("movies/trending").
	Locator string
}
