package services

import (
	"context"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// DatasetSource provides the current sheet dataset
type DatasetSource interface {
	Get(ctx context.Context) (*sheetsdata.Dataset, error)
}

// Localizer resolves catalog messages for a locale
type Localizer interface {
	Translate(locale model.Locale, key string, values map[string]string) string
	StatusLabel(locale model.Locale, status model.Status) string
	StatusDescription(locale model.Locale, status model.Status) string
	Achievement(locale model.Locale, a model.Achievement) model.Achievement
}

// ProgressTracker applies visitor actions to gamification progress
type ProgressTracker interface {
	Progress(ctx context.Context, visitorID string) (*model.Progress, error)
	ConfirmSupport(ctx context.Context, visitorID, orgID string, status model.Status) (*model.Progress, []model.Achievement, error)
	RecordDonationClick(ctx context.Context, visitorID, orgID string) (*model.Progress, error)
	RecordWatering(ctx context.Context, visitorID string) (*model.Progress, bool, error)
	RecordVisit(ctx context.Context, visitorID, orgID string) (*model.Progress, []model.Achievement, error)
}

// ColumnSource reads the raw organizations tab layout
type ColumnSource interface {
	Columns(ctx context.Context) (*sheetsdata.ColumnReport, error)
}

func translator(localizer Localizer, locale model.Locale) func(key string, values map[string]string) string {
	return func(key string, values map[string]string) string {
		return localizer.Translate(locale, key, values)
	}
}
