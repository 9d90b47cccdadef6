package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/gamification"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// ActionResult is the visitor's progress after an action
type ActionResult struct {
	Progress *model.Progress     `json:"progress"`
	Unlocked []model.Achievement `json:"unlocked"`
	Granted  bool                `json:"granted,omitempty"`
}

// ListAchievements returns the localized achievement catalog
func ListAchievements(localizer Localizer, locale model.Locale) []model.Achievement {
	achievements := gamification.Achievements()
	for i := range achievements {
		achievements[i] = localizer.Achievement(locale, achievements[i])
	}
	return achievements
}

// VisitorProgress returns the visitor's progress with localized achievements
func VisitorProgress(ctx context.Context, tracker ProgressTracker, localizer Localizer, visitorID string, locale model.Locale) (*model.Progress, error) {
	if err := gamification.ValidateVisitorID(visitorID); err != nil {
		return nil, err
	}
	progress, err := tracker.Progress(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return localizeProgress(localizer, locale, progress), nil
}

// ConfirmSupport records a donation confirmation using the organization's current status
func ConfirmSupport(ctx context.Context, data DatasetSource, tracker ProgressTracker, localizer Localizer, logger *zap.Logger, visitorID, orgID string, locale model.Locale) (*ActionResult, error) {
	org, err := visibleOrganization(ctx, data, orgID)
	if err != nil {
		return nil, err
	}

	progress, unlocked, err := tracker.ConfirmSupport(ctx, visitorID, org.ID, org.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm support: %w", err)
	}

	logger.Info("Support confirmed",
		zap.String("visitor", visitorID),
		zap.String("organization", org.ID),
		zap.Int("unlocked", len(unlocked)))
	return newActionResult(localizer, locale, progress, unlocked, false), nil
}

// RecordDonationClick counts a click through to a visible organization's donation page
func RecordDonationClick(ctx context.Context, data DatasetSource, tracker ProgressTracker, localizer Localizer, visitorID, orgID string, locale model.Locale) (*ActionResult, error) {
	org, err := visibleOrganization(ctx, data, orgID)
	if err != nil {
		return nil, err
	}

	progress, err := tracker.RecordDonationClick(ctx, visitorID, org.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record click: %w", err)
	}
	return newActionResult(localizer, locale, progress, nil, false), nil
}

// RecordVisit tracks a visit to a visible organization's page
func RecordVisit(ctx context.Context, data DatasetSource, tracker ProgressTracker, localizer Localizer, visitorID, orgID string, locale model.Locale) (*ActionResult, error) {
	org, err := visibleOrganization(ctx, data, orgID)
	if err != nil {
		return nil, err
	}

	progress, unlocked, err := tracker.RecordVisit(ctx, visitorID, org.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}
	return newActionResult(localizer, locale, progress, unlocked, false), nil
}

// RecordWatering grants the daily watering credit
func RecordWatering(ctx context.Context, tracker ProgressTracker, localizer Localizer, visitorID string, locale model.Locale) (*ActionResult, error) {
	progress, granted, err := tracker.RecordWatering(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to record watering: %w", err)
	}
	return newActionResult(localizer, locale, progress, nil, granted), nil
}

func visibleOrganization(ctx context.Context, data DatasetSource, orgID string) (*model.Organization, error) {
	dataset, err := data.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizations: %w", err)
	}
	org, ok := dataset.FindOrganization(orgID)
	if !ok || !org.IsShow {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, orgID)
	}
	return org, nil
}

func newActionResult(localizer Localizer, locale model.Locale, progress *model.Progress, unlocked []model.Achievement, granted bool) *ActionResult {
	result := &ActionResult{
		Progress: localizeProgress(localizer, locale, progress),
		Unlocked: make([]model.Achievement, len(unlocked)),
		Granted:  granted,
	}
	for i, a := range unlocked {
		result.Unlocked[i] = localizer.Achievement(locale, a)
	}
	return result
}

func localizeProgress(localizer Localizer, locale model.Locale, progress *model.Progress) *model.Progress {
	localized := progress.Clone()
	for i := range localized.Achievements {
		localized.Achievements[i] = localizer.Achievement(locale, localized.Achievements[i])
	}
	return localized
}
