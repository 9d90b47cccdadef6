package gamification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

// Listener is notified with a copy of a visitor's document after every save
type Listener func(visitorID string, progress *model.Progress)

// Store mirrors progress documents in memory in front of a persistence backend
// and notifies subscribers whenever a document changes
type Store struct {
	backend db.ProgressStore
	logger  *zap.Logger

	mu     sync.RWMutex
	mirror map[string]*model.Progress

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

func NewStore(backend db.ProgressStore, logger *zap.Logger) *Store {
	return &Store{
		backend:   backend,
		logger:    logger,
		mirror:    make(map[string]*model.Progress),
		listeners: make(map[int]Listener),
	}
}

// Load returns the visitor's document, or an empty one if nothing is stored
func (s *Store) Load(ctx context.Context, visitorID string) (*model.Progress, error) {
	s.mu.RLock()
	cached, ok := s.mirror[visitorID]
	s.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	progress, err := s.backend.GetProgress(ctx, visitorID)
	if errors.Is(err, db.ErrNotFound) {
		return model.NewProgress(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	s.mu.Lock()
	s.mirror[visitorID] = progress.Clone()
	s.mu.Unlock()
	return progress, nil
}

// Save updates the mirror first, persists, then notifies subscribers.
// A failed write restores the previous mirror entry and notifies nobody.
func (s *Store) Save(ctx context.Context, visitorID string, progress *model.Progress) error {
	written := progress.Clone()
	s.mu.Lock()
	previous, hadPrevious := s.mirror[visitorID]
	s.mirror[visitorID] = written
	s.mu.Unlock()

	if err := s.backend.PutProgress(ctx, visitorID, progress); err != nil {
		s.logger.Error("Failed to persist progress",
			zap.String("visitor", visitorID),
			zap.Error(err))
		s.rollback(visitorID, written, previous, hadPrevious)
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.notify(visitorID, progress)
	return nil
}

// rollback leaves the entry alone if a later save has already replaced it
func (s *Store) rollback(visitorID string, written, previous *model.Progress, hadPrevious bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mirror[visitorID] != written {
		return
	}
	if hadPrevious {
		s.mirror[visitorID] = previous
	} else {
		delete(s.mirror, visitorID)
	}
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// Forget drops a visitor from the mirror so the next Load reads the backend
func (s *Store) Forget(visitorID string) {
	s.mu.Lock()
	delete(s.mirror, visitorID)
	s.mu.Unlock()
}

func (s *Store) notify(visitorID string, progress *model.Progress) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(visitorID, progress.Clone())
	}
}
