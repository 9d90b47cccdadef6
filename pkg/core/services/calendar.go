package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// OrganizationReminder encodes an iCalendar reminder for the next opening of a
// visible organization's donation window
func OrganizationReminder(ctx context.Context, data DatasetSource, localizer Localizer, logger *zap.Logger, id string, locale model.Locale, now time.Time) ([]byte, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	org, ok := dataset.FindOrganization(id)
	if !ok || !org.IsShow {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, id)
	}

	ics, err := donationwindow.ReminderCalendar(org, locale, translator(localizer, locale), now)
	if err != nil {
		return nil, fmt.Errorf("failed to build reminder for %s: %w", id, err)
	}

	logger.Debug("Built reminder calendar", zap.String("id", id), zap.String("locale", string(locale)))
	return ics, nil
}

// SiteCalendar encodes reminders for every visible organization with a start date
func SiteCalendar(ctx context.Context, data DatasetSource, localizer Localizer, logger *zap.Logger, locale model.Locale, now time.Time) ([]byte, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}

	ics, err := donationwindow.CalendarFeed(dataset.Organizations, locale, translator(localizer, locale), now)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar feed: %w", err)
	}

	logger.Debug("Built calendar feed", zap.Int("organizations", len(dataset.Organizations)))
	return ics, nil
}
