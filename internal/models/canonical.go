package models

import "strings"

// Genre is one TMDB genre entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CanonicalRecord is the TMDB detail or find-result object used as the
// preferred source of truth once an item resolves. TMDB uses title/release_date
// for movies and name/first_air_date for TV, so both field pairs are kept and
// accessors pick whichever is populated.
type CanonicalRecord struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Genres        []Genre `json:"genres"`
	GenreIDs      []int64 `json:"genre_ids"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	MediaTypeTag  string  `json:"media_type"`
}

// BestTitle returns the movie title or TV name, whichever is set.
func (c *CanonicalRecord) BestTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// BestOriginalTitle returns original_title or original_name.
func (c *CanonicalRecord) BestOriginalTitle() string {
	if c.OriginalTitle != "" {
		return c.OriginalTitle
	}
	return c.OriginalName
}

// BestReleaseDate returns release_date or first_air_date, trimmed.
func (c *CanonicalRecord) BestReleaseDate() string {
	if d := strings.TrimSpace(c.ReleaseDate); d != "" {
		return d
	}
	return strings.TrimSpace(c.FirstAirDate)
}

// GenreTitle joins genre names with ", " for the output contract.
func (c *CanonicalRecord) GenreTitle() string {
	if len(c.Genres) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.Genres))
	for _, g := range c.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}
