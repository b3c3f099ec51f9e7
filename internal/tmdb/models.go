package tmdb

import "github.com/inchstudio/forward-catalogs/internal/models"

// FindResult is the response of TMDB's find-by-external-id endpoint. The
// matches for an IMDb id land in one of two buckets depending on what TMDB
// thinks the title is; both are kept so the resolver can apply its
// cross-kind fallback.
type FindResult struct {
	MovieResults []models.CanonicalRecord `json:"movie_results"`
	TVResults    []models.CanonicalRecord `json:"tv_results"`
}

// Bucket returns the result bucket for the given kind.
func (f *FindResult) Bucket(kind models.MediaKind) []models.CanonicalRecord {
	if kind == models.KindTV {
		return f.TVResults
	}
	return f.MovieResults
}

// listResult covers TMDB's paged list endpoints (trending, discover) and
// collection details, which return "parts" instead of "results".
type listResult struct {
	Results []models.CanonicalRecord `json:"results"`
	Parts   []models.CanonicalRecord `json:"parts"`
}

func (l *listResult) records() []models.CanonicalRecord {
	if l.Results != nil {
		return l.Results
	}
	return l.Parts
}
