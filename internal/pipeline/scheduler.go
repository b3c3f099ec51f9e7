package pipeline

import (
	"context"
	"sync"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

// Scheduler runs Resolve+Format over a raw list under a concurrency cap.
type Scheduler struct {
	resolver *Resolver
}

func NewScheduler(resolver *Resolver) *Scheduler {
	return &Scheduler{resolver: resolver}
}

// ResolveAll enriches raws and returns one output item per input, in input
// order. The list is processed in contiguous chunks of limit items: each
// chunk resolves concurrently and completes before the next chunk starts.
// A limit of zero (or less) means full fan-out in a single chunk.
//
// One item's failed resolution never affects its siblings; that item is
// formatted purely from its raw fields.
func (s *Scheduler) ResolveAll(ctx context.Context, raws []models.RawItem, limit int, language string) []models.OutputItem {
	if len(raws) == 0 {
		return []models.OutputItem{}
	}
	if limit <= 0 {
		limit = len(raws)
	}

	// Results are collected per slot so output order matches input order
	// regardless of completion order.
	results := make([]models.OutputItem, len(raws))

	for start := 0; start < len(raws); start += limit {
		end := start + limit
		if end > len(raws) {
			end = len(raws)
		}

		var wg sync.WaitGroup
		wg.Add(end - start)
		for i := start; i < end; i++ {
			i := i
			go func() {
				defer wg.Done()
				raw := raws[i]
				canonical := s.resolver.Resolve(ctx, raw.NativeID, raw.Kind, language)
				results[i] = Format(raw, canonical)
			}()
		}
		wg.Wait()
	}

	return results
}

// Truncate caps a raw list before enrichment. Call sites use it to bound the
// worst-case lookup count of merged views; it is a precondition, not part of
// the scheduling itself. A max of zero or less leaves the list unchanged.
func Truncate(raws []models.RawItem, max int) []models.RawItem {
	if max <= 0 || len(raws) <= max {
		return raws
	}
	return raws[:max]
}
