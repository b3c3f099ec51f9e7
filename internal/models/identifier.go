package models

import "regexp"

// IDKind classifies a native catalog identifier by its string form alone.
type IDKind int

const (
	// IDUnknown covers anything that is neither an IMDb nor a TMDB id:
	// Kitsu ids, opaque URL fragments, empty strings.
	IDUnknown IDKind = iota
	// IDIMDb matches IMDb tt-ids (^tt\d+$).
	IDIMDb
	// IDTMDB matches bare numeric TMDB ids (^\d+$).
	IDTMDB
)

var (
	imdbIDPattern = regexp.MustCompile(`^tt\d+$`)
	tmdbIDPattern = regexp.MustCompile(`^\d+$`)
)

// ClassifyID tags a native identifier as imdb, tmdb, or unknown.
// The test is purely syntactic: it never consults source metadata and never
// fails. An unknown classification tells the resolver to skip resolution.
func ClassifyID(nativeID string) IDKind {
	switch {
	case imdbIDPattern.MatchString(nativeID):
		return IDIMDb
	case tmdbIDPattern.MatchString(nativeID):
		return IDTMDB
	default:
		return IDUnknown
	}
}

// String returns the classification name as used in output item types.
func (k IDKind) String() string {
	switch k {
	case IDIMDb:
		return "imdb"
	case IDTMDB:
		return "tmdb"
	default:
		return "unknown"
	}
}
