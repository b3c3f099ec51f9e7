package pipeline

import (
	"context"
	"sync"

	"github.com/inchstudio/forward-catalogs/internal/config"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

// CatalogFetch fetches and formats one catalog's items.
type CatalogFetch func(ctx context.Context, cat models.CatalogDescriptor) ([]models.OutputItem, error)

// FetchAll fetches every catalog in parallel and returns one item list per
// catalog, positionally aligned with cats. A catalog whose fetch fails
// contributes an empty list: a single bad catalog never fails the merged
// view. Errors are logged, not propagated.
func FetchAll(ctx context.Context, cats []models.CatalogDescriptor, fetch CatalogFetch) [][]models.OutputItem {
	logger := config.GetLogger()

	lists := make([][]models.OutputItem, len(cats))
	var wg sync.WaitGroup
	wg.Add(len(cats))

	for i, cat := range cats {
		i, cat := i, cat
		go func() {
			defer wg.Done()
			items, err := fetch(ctx, cat)
			if err != nil {
				logger.Warn().Err(err).Str("catalog", cat.ID).Str("name", cat.Name).Msg("Catalog fetch failed, contributing zero items")
				return
			}
			lists[i] = items
		}()
	}

	wg.Wait()
	return lists
}

// MergeDedup flattens lists in declaration order and deduplicates by output
// id, keeping the first occurrence. Flattening in declaration order keeps
// first-seen-wins deterministic even though the catalogs were fetched
// concurrently.
func MergeDedup(lists [][]models.OutputItem) []models.OutputItem {
	seen := make(map[string]struct{})
	merged := []models.OutputItem{}

	for _, list := range lists {
		for _, item := range list {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged
}

// Interleave zips two lists round-robin by index: a[0], b[0], a[1], b[1]…
// Once the shorter list runs out, the longer list's remaining items follow
// in order. Used for the movie+series mixed views.
func Interleave(a, b []models.OutputItem) []models.OutputItem {
	merged := make([]models.OutputItem, 0, len(a)+len(b))
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	for i := 0; i < longest; i++ {
		if i < len(a) {
			merged = append(merged, a[i])
		}
		if i < len(b) {
			merged = append(merged, b[i])
		}
	}
	return merged
}

// Sections fetches every catalog in parallel and returns one labeled section
// per catalog that produced items, in declaration order. Empty and failed
// catalogs are dropped entirely; an empty section is never returned.
func Sections(ctx context.Context, cats []models.CatalogDescriptor, fetch CatalogFetch) []models.Section {
	lists := FetchAll(ctx, cats, fetch)

	sections := []models.Section{}
	for i, items := range lists {
		if len(items) == 0 {
			continue
		}
		sections = append(sections, models.Section{
			Title: cats[i].Name,
			Items: items,
		})
	}
	return sections
}
