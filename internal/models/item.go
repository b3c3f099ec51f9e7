package models

// RawItem is a source record prior to enrichment. Adapters map every source
// shape (Stremio meta, MDBList entry, Trakt record, TMDB list row) into this
// one struct so downstream code never re-inspects response shapes.
// RawItems live for a single request and are discarded after formatting.
type RawItem struct {
	// NativeID is the identifier exactly as the source provided it.
	NativeID string
	// Kind is the declared media kind for this item. When the source tags
	// items individually (Stremio metas), the item's own tag wins over the
	// catalog's declared kind.
	Kind MediaKind

	Title        string
	Description  string
	PosterPath   string
	BackdropPath string
	Rating       float64
	ReleaseDate  string
	// FallbackType overrides the last-resort output type for sources whose
	// unresolvable ids are still meaningful to the host (default "url").
	FallbackType string
}

// OutputItem is the fixed shape returned to the host. All ten fields are
// always present; absence is an empty string or zero, never an omitted key.
type OutputItem struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ReleaseDate  string  `json:"releaseDate"`
	BackdropPath string  `json:"backdropPath"`
	PosterPath   string  `json:"posterPath"`
	Rating       float64 `json:"rating"`
	MediaType    string  `json:"mediaType"`
	GenreTitle   string  `json:"genreTitle"`
}

// Section is a labeled group of items returned when the host requests a
// sectioned view instead of a flat list.
type Section struct {
	Title string       `json:"title"`
	Items []OutputItem `json:"items"`
}

// Stream is a playable source returned by stream-type modules.
type Stream struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// IntroTimestamps is the skip-intro window for one episode, in milliseconds.
type IntroTimestamps struct {
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}
