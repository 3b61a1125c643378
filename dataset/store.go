package dataset

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"absen_map_dashboard/models"
)

// Loader produces the raw table of a record source.
type Loader interface {
	Name() string
	Load(ctx context.Context) (*models.Table, error)
}

// Store holds the current snapshot. Readers never block on a reload and a
// failed reload leaves the previous snapshot in place.
type Store struct {
	loader  Loader
	current atomic.Pointer[models.Snapshot]
	mu      sync.Mutex
	now     func() time.Time
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader, now: time.Now}
}

// Current returns the latest snapshot, or nil before the first load.
func (s *Store) Current() *models.Snapshot {
	return s.current.Load()
}

// Reload loads the source again and swaps in the result.
func (s *Store) Reload(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", s.loader.Name(), err)
	}

	snap := &models.Snapshot{
		Table:    *table,
		Records:  BuildRecords(table),
		Source:   s.loader.Name(),
		LoadedAt: s.now(),
	}
	s.current.Store(snap)

	log.Printf("Loaded %d attendance records from %s", len(snap.Records), snap.Source)
	return snap, nil
}
