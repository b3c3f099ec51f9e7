package pipeline

import (
	"strconv"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

// Format merges a canonical record into the raw item under the canonical-wins
// precedence: each canonical field is used when present, the raw field backs
// it otherwise, and the zero value ("" or 0) stands in when both are absent.
// Every output field is always populated; nothing is ever omitted.
//
// The mediaType always reflects the declared kind, even when an IMDb id
// resolved through the cross-kind bucket: the host groups sections by the
// requested kind and expects them to stay homogeneous.
func Format(raw models.RawItem, canonical *models.CanonicalRecord) models.OutputItem {
	item := models.OutputItem{
		Title:        strings.TrimSpace(raw.Title),
		Description:  raw.Description,
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		Rating:       raw.Rating,
		ReleaseDate:  strings.TrimSpace(raw.ReleaseDate),
		MediaType:    raw.Kind.String(),
	}

	if canonical != nil {
		item.ID = strconv.FormatInt(canonical.ID, 10)
		item.Type = models.IDTMDB.String()
		if title := canonical.BestTitle(); title != "" {
			item.Title = title
		}
		if canonical.Overview != "" {
			item.Description = canonical.Overview
		}
		if canonical.PosterPath != "" {
			item.PosterPath = canonical.PosterPath
		}
		if canonical.BackdropPath != "" {
			item.BackdropPath = canonical.BackdropPath
		}
		if canonical.VoteAverage != 0 {
			item.Rating = canonical.VoteAverage
		}
		if date := canonical.BestReleaseDate(); date != "" {
			item.ReleaseDate = date
		}
		item.GenreTitle = canonical.GenreTitle()
		return item
	}

	// Unresolved: the native id passes through with its classification, or
	// the source-declared fallback type for sources whose ids are already
	// meaningful to the host.
	item.ID = raw.NativeID
	switch {
	case models.ClassifyID(raw.NativeID) == models.IDIMDb:
		item.Type = models.IDIMDb.String()
	case raw.FallbackType != "":
		item.Type = raw.FallbackType
	default:
		item.Type = "url"
	}
	return item
}
