// Package cache holds the most recent sheet dataset in memory with explicit
// invalidation.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// DefaultTTL matches the sheet's five minute revalidation window
const DefaultTTL = 5 * time.Minute

// Loader produces a fresh dataset
type Loader interface {
	Load(ctx context.Context) (*sheetsdata.Dataset, error)
}

// Snapshots serves one shared dataset until it expires or is invalidated.
// Concurrent misses share a single load.
type Snapshots struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu         sync.RWMutex
	current    *sheetsdata.Dataset
	expiresAt  time.Time
	generation uint64

	group singleflight.Group
}

func New(loader Loader, ttl time.Duration, logger *zap.Logger) *Snapshots {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Snapshots{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Get returns the cached dataset, loading it when missing or expired.
// If a reload fails while an expired dataset is held, the expired one is served.
func (s *Snapshots) Get(ctx context.Context) (*sheetsdata.Dataset, error) {
	s.mu.RLock()
	current, expiresAt := s.current, s.expiresAt
	s.mu.RUnlock()

	if current != nil && s.now().Before(expiresAt) {
		return current, nil
	}

	dataset, err := s.load(ctx)
	if err != nil {
		if current != nil {
			s.logger.Warn("Reload failed, serving stale data",
				zap.Time("loadedAt", current.LoadedAt),
				zap.Error(err))
			return current, nil
		}
		return nil, err
	}
	return dataset, nil
}

// Refresh loads unconditionally and replaces the cached dataset
func (s *Snapshots) Refresh(ctx context.Context) (*sheetsdata.Dataset, error) {
	return s.load(ctx)
}

// Invalidate drops the cached dataset so the next Get reloads.
// A load already in flight will not repopulate the cache.
func (s *Snapshots) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.expiresAt = time.Time{}
	s.generation++
	s.mu.Unlock()

	s.logger.Info("Data cache invalidated")
}

// LoadedAt reports when the cached dataset was read, false when nothing is cached
func (s *Snapshots) LoadedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return time.Time{}, false
	}
	return s.current.LoadedAt, true
}

func (s *Snapshots) load(ctx context.Context) (*sheetsdata.Dataset, error) {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	// One caller giving up must not fail the others sharing this load
	loadCtx := context.WithoutCancel(ctx)

	result, err, shared := s.group.Do(fmt.Sprint(generation), func() (interface{}, error) {
		start := s.now()
		dataset, err := s.loader.Load(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}

		s.mu.Lock()
		if s.generation == generation {
			s.current = dataset
			s.expiresAt = s.now().Add(s.ttl)
		}
		s.mu.Unlock()

		s.logger.Debug("Dataset loaded", zap.Duration("duration", s.now().Sub(start)))
		return dataset, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Dataset load shared between callers")
	}
	return result.(*sheetsdata.Dataset), nil
}
