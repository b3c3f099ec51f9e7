package widgets

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

var tourCountries = []struct {
	ID    string
	Title string
	Lang  string
}{
	{"korea", "Best of Korea", "ko"},
	{"japan", "Best of Japan", "ja"},
	{"france", "French Cinema", "fr"},
	{"india", "Bollywood Hits", "hi"},
	{"spain", "Spanish Gems", "es"},
}

// genreNames maps TMDB genre ids to display names, covering both the movie
// and TV vocabularies. Discover rows carry genre ids only, so the names are
// resolved locally instead of spending a detail lookup per item.
var genreNames = map[int64]string{
	10759: "Action & Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	10762: "Kids",
	9648:  "Mystery",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
	37:    "Western",
	28:    "Action",
	12:    "Adventure",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
}

// genreTitleFromIDs renders at most the first two known genres.
func genreTitleFromIDs(ids []int64) string {
	names := make([]string, 0, 2)
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
			if len(names) == 2 {
				break
			}
		}
	}
	return strings.Join(names, ", ")
}

func (s *service) globalTourWidget() Widget {
	modules := make([]Module, 0, len(tourCountries))
	for _, country := range tourCountries {
		country := country
		modules = append(modules, Module{
			ID:     country.ID,
			Title:  country.Title,
			Params: []Param{languageParam},
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.fetchGlobal(ctx, args, country.Lang)
			},
		})
	}

	return Widget{
		ID:          "global-tour",
		Title:       "Global Tour",
		Version:     "1.1.0",
		Description: "Explore the best cinema from around the world.",
		Site:        "https://themoviedb.org",
		Modules:     modules,
	}
}

// fetchGlobal discovers well-rated movies in one original language. The
// vote floors keep obscure entries out.
func (s *service) fetchGlobal(ctx context.Context, args Args, langCode string) ([]models.OutputItem, error) {
	params := url.Values{}
	params.Set("with_original_language", langCode)
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_average.gte", "6.5")
	params.Set("vote_count.gte", "100")
	if args.Page > 1 {
		params.Set("page", strconv.Itoa(args.Page))
	}

	records, err := s.tmdb.List(ctx, "discover/movie", params, s.language(args))
	if err != nil {
		return nil, err
	}

	items := make([]models.OutputItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.OutputItem{
			ID:           strconv.FormatInt(rec.ID, 10),
			Type:         "tmdb",
			Title:        rec.BestTitle(),
			Description:  rec.Overview,
			ReleaseDate:  rec.BestReleaseDate(),
			BackdropPath: rec.BackdropPath,
			PosterPath:   rec.PosterPath,
			Rating:       rec.VoteAverage,
			MediaType:    models.KindMovie.String(),
			GenreTitle:   genreTitleFromIDs(rec.GenreIDs),
		})
	}
	return items, nil
}
