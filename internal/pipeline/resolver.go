// Package pipeline implements the enrichment pipeline shared by every
// widget: classify a native identifier, resolve it to a canonical TMDB
// record, and merge the result with the raw source fields under a fixed
// fallback precedence.
package pipeline

import (
	"context"

	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/metrics"
	"github.com/inchstudio/forward-catalogs/internal/models"
	"github.com/inchstudio/forward-catalogs/internal/tmdb"
)

// Resolver turns classified native identifiers into canonical TMDB records.
type Resolver struct {
	tmdb tmdb.Client
}

func NewResolver(client tmdb.Client) *Resolver {
	return &Resolver{tmdb: client}
}

// Resolve looks up the canonical record for a native id of the declared
// kind. It returns nil when the id is unclassifiable, when TMDB has no
// match, or when the lookup fails; resolution failure is never an error to
// the caller. At most one TMDB call is issued per invocation.
func (r *Resolver) Resolve(ctx context.Context, nativeID string, kind models.MediaKind, language string) *models.CanonicalRecord {
	logger := config.GetLogger()

	switch models.ClassifyID(nativeID) {
	case models.IDTMDB:
		record, err := r.tmdb.Detail(ctx, kind, nativeID, language)
		if err != nil {
			logger.Debug().Err(err).Str("id", nativeID).Str("kind", kind.String()).Msg("TMDB detail lookup failed, falling back to raw fields")
			metrics.ResolutionsTotal.WithLabelValues("fallback").Inc()
			return nil
		}
		metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
		return record

	case models.IDIMDb:
		result, err := r.tmdb.Find(ctx, nativeID, language)
		if err != nil {
			logger.Debug().Err(err).Str("id", nativeID).Msg("TMDB find lookup failed, falling back to raw fields")
			metrics.ResolutionsTotal.WithLabelValues("fallback").Inc()
			return nil
		}
		// Declared-kind bucket first. An IMDb id for a special or TV movie
		// can land only in the other bucket, so cross-kind is the fallback.
		if bucket := result.Bucket(kind); len(bucket) > 0 {
			metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
			return &bucket[0]
		}
		if bucket := result.Bucket(kind.Other()); len(bucket) > 0 {
			logger.Debug().Str("id", nativeID).Str("declared", kind.String()).Msg("IMDb id resolved in cross-kind bucket")
			metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
			return &bucket[0]
		}
		metrics.ResolutionsTotal.WithLabelValues("fallback").Inc()
		return nil

	default:
		// Unknown ids are never sent to TMDB.
		metrics.ResolutionsTotal.WithLabelValues("skipped").Inc()
		return nil
	}
}
