package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

var _ ProgressStore = (*FileDB)(nil)

// FileDB stores every visitor's progress in one JSON document on disk
type FileDB struct {
	path string
	mu   sync.Mutex
}

// NewFileDB creates a file-backed store. The file is created on first write.
func NewFileDB(path string) (*FileDB, error) {
	if path == "" {
		return nil, fmt.Errorf("progress file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create progress directory: %w", err)
	}
	return &FileDB{path: path}, nil
}

// load reads the document, returning an empty map if the file doesn't exist
func (db *FileDB) load() (map[string]*model.Progress, error) {
	data, err := os.ReadFile(db.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.Progress{}, nil
		}
		return nil, fmt.Errorf("failed to read progress file: %w", err)
	}

	state := map[string]*model.Progress{}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse progress file: %w", err)
	}
	return state, nil
}

// save writes through a temp file so a crash never leaves a truncated document
func (db *FileDB) save(state map[string]*model.Progress) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	if err := os.Rename(tmp, db.path); err != nil {
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

func (db *FileDB) GetProgress(ctx context.Context, visitorID string) (*model.Progress, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	state, err := db.load()
	if err != nil {
		return nil, err
	}
	p, ok := state[visitorID]
	if !ok || p == nil {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (db *FileDB) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	state, err := db.load()
	if err != nil {
		return err
	}
	state[visitorID] = progress.Clone()
	return db.save(state)
}

func (db *FileDB) ListVisitors(ctx context.Context) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	state, err := db.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(state))
	for id := range state {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (db *FileDB) Close() error {
	return nil
}
