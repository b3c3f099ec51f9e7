package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inchstudio/forward-catalogs/internal/models"
)

// gateTMDB wraps stubTMDB and records how many Detail lookups are in flight
// at once.
type gateTMDB struct {
	stubTMDB
	inflight atomic.Int64
	peak     atomic.Int64
}

func (g *gateTMDB) Detail(ctx context.Context, kind models.MediaKind, id, language string) (*models.CanonicalRecord, error) {
	current := g.inflight.Add(1)
	defer g.inflight.Add(-1)
	for {
		peak := g.peak.Load()
		if current <= peak || g.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return g.stubTMDB.Detail(ctx, kind, id, language)
}

func TestScheduler_OrderPreservedWithFailure(t *testing.T) {
	details := make(map[string]*models.CanonicalRecord)
	raws := make([]models.RawItem, 10)
	for i := range raws {
		id := strconv.Itoa(100 + i)
		raws[i] = models.RawItem{NativeID: id, Kind: models.KindMovie, Title: "raw " + id, FallbackType: "tmdb"}
		if i != 4 { // one item stays unresolvable
			details["movie/"+id] = &models.CanonicalRecord{
				ID:    int64(100 + i),
				Title: fmt.Sprintf("Movie %d", 100+i),
			}
		}
	}
	s := NewScheduler(NewResolver(&stubTMDB{details: details}))

	items := s.ResolveAll(context.Background(), raws, 3, "en-US")

	if len(items) != len(raws) {
		t.Fatalf("Expected %d items, got %d", len(raws), len(items))
	}
	for i, item := range items {
		wantID := strconv.Itoa(100 + i)
		if item.ID != wantID {
			t.Errorf("Slot %d: expected id %s, got %s", i, wantID, item.ID)
		}
	}
	// The failed item falls back to its raw fields and its declared type.
	if items[4].Title != "raw 104" || items[4].Type != "tmdb" {
		t.Errorf("Failed item should format from raw fields, got %+v", items[4])
	}
	if items[5].Title != "Movie 105" {
		t.Errorf("Sibling of failed item must still resolve, got %+v", items[5])
	}
}

func TestScheduler_ConcurrencyCap(t *testing.T) {
	details := make(map[string]*models.CanonicalRecord)
	raws := make([]models.RawItem, 12)
	for i := range raws {
		id := strconv.Itoa(200 + i)
		raws[i] = models.RawItem{NativeID: id, Kind: models.KindMovie}
		details["movie/"+id] = &models.CanonicalRecord{ID: int64(200 + i), Title: id}
	}
	gate := &gateTMDB{stubTMDB: stubTMDB{details: details}}
	s := NewScheduler(NewResolver(gate))

	s.ResolveAll(context.Background(), raws, 3, "en-US")

	if peak := gate.peak.Load(); peak > 3 {
		t.Errorf("Expected at most 3 concurrent lookups, observed %d", peak)
	}
	if gate.stubTMDB.detailCalls.Load() != 12 {
		t.Errorf("Expected 12 lookups, got %d", gate.stubTMDB.detailCalls.Load())
	}
}

func TestScheduler_ZeroLimitSingleChunk(t *testing.T) {
	s := NewScheduler(NewResolver(&stubTMDB{details: map[string]*models.CanonicalRecord{
		"movie/27205": {ID: 27205, Title: "Inception"},
	}}))

	items := s.ResolveAll(context.Background(), []models.RawItem{
		{NativeID: "27205", Kind: models.KindMovie},
	}, 0, "en-US")

	if len(items) != 1 || items[0].Title != "Inception" {
		t.Fatalf("Expected single resolved item, got %+v", items)
	}
}

func TestScheduler_EmptyInput(t *testing.T) {
	s := NewScheduler(NewResolver(&stubTMDB{}))
	if items := s.ResolveAll(context.Background(), nil, 5, "en-US"); items == nil || len(items) != 0 {
		t.Fatalf("Expected empty non-nil slice, got %#v", items)
	}
}

func TestTruncate(t *testing.T) {
	raws := make([]models.RawItem, 60)
	for i := range raws {
		raws[i] = models.RawItem{NativeID: strconv.Itoa(i)}
	}
	if got := Truncate(raws, 50); len(got) != 50 {
		t.Errorf("Expected 50 items, got %d", len(got))
	}
	if got := Truncate(raws, 0); len(got) != 60 {
		t.Errorf("Zero max must not truncate, got %d", len(got))
	}
	if got := Truncate(raws[:10], 50); len(got) != 10 {
		t.Errorf("Short lists pass through, got %d", len(got))
	}
}
