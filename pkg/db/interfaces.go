package db

import (
	"context"
	"errors"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// ErrNotFound is returned when a visitor has no stored progress
var ErrNotFound = errors.New("progress not found")

// ProgressStore defines the interface for visitor progress persistence.
// The memory, file, sqlite and postgres backends all implement it.
type ProgressStore interface {
	GetProgress(ctx context.Context, visitorID string) (*model.Progress, error)
	PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error
	ListVisitors(ctx context.Context) ([]string, error)
	Close() error
}

// SupportCounter is implemented by backends that can aggregate confirmations in SQL
type SupportCounter interface {
	SupportCounts(ctx context.Context) (map[string]int, error)
}
