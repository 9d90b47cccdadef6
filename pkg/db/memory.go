package db

import (
	"context"
	"sort"
	"sync"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

var _ ProgressStore = (*MemoryDB)(nil)

// MemoryDB keeps progress documents in process memory
type MemoryDB struct {
	mu       sync.RWMutex
	progress map[string]*model.Progress
}

// NewMemoryDB creates an empty in-memory store
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{progress: make(map[string]*model.Progress)}
}

// GetProgress returns a copy of the stored document
func (db *MemoryDB) GetProgress(ctx context.Context, visitorID string) (*model.Progress, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.progress[visitorID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// PutProgress replaces the stored document
func (db *MemoryDB) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.progress[visitorID] = progress.Clone()
	return nil
}

// ListVisitors returns stored visitor ids in sorted order
func (db *MemoryDB) ListVisitors(ctx context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := make([]string, 0, len(db.progress))
	for id := range db.progress {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (db *MemoryDB) Close() error {
	return nil
}
