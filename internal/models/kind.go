package models

import "strings"

// MediaKind is the two-valued media vocabulary used in output items.
// Source catalogs use a wider vocabulary ("series", "show"); everything is
// normalized to movie/tv at the adapter boundary.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// ParseKind normalizes a source-declared media kind to MediaKind.
// Unrecognized values default to movie, matching how catalogs without an
// explicit kind behave upstream.
func ParseKind(s string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tv", "series", "show", "shows":
		return KindTV
	default:
		return KindMovie
	}
}

// StremioType returns the kind in Stremio's catalog vocabulary, which uses
// "series" where the output contract uses "tv".
func (k MediaKind) StremioType() string {
	if k == KindTV {
		return "series"
	}
	return "movie"
}

// String returns the kind as used in TMDB paths and output items.
func (k MediaKind) String() string {
	return string(k)
}

// Other returns the opposite kind, used for the cross-kind find fallback.
func (k MediaKind) Other() MediaKind {
	if k == KindMovie {
		return KindTV
	}
	return KindMovie
}
