// Package gamification tracks visitor support confirmations, clicks, visits and
// watering credits, and unlocks achievements from them.
package gamification

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

var (
	ErrUnknownOrganization = errors.New("unknown organization")
	ErrInvalidVisitorID    = errors.New("invalid visitor id")
)

// Clock abstracts time.Now for deterministic tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the wall clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// NewVisitorID returns a fresh random visitor id
func NewVisitorID() string {
	return uuid.NewString()
}

// ValidateVisitorID accepts only UUID-formatted visitor ids
func ValidateVisitorID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidVisitorID, id)
	}
	return nil
}

// Tracker applies visitor actions to progress documents held in a Store
type Tracker struct {
	store  *Store
	clock  Clock
	logger *zap.Logger

	// serializes load-modify-save cycles
	mu sync.Mutex
}

func NewTracker(store *Store, clock Clock, logger *zap.Logger) *Tracker {
	if clock == nil {
		clock = RealClock{}
	}
	return &Tracker{store: store, clock: clock, logger: logger}
}

// Progress returns the visitor's current document
func (t *Tracker) Progress(ctx context.Context, visitorID string) (*model.Progress, error) {
	return t.store.Load(ctx, visitorID)
}

// update runs fn against the visitor's document and saves the result
func (t *Tracker) update(ctx context.Context, visitorID string, fn func(p *model.Progress, now time.Time) bool) (*model.Progress, error) {
	if err := ValidateVisitorID(visitorID); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	progress, err := t.store.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if changed := fn(progress, t.clock.Now().UTC()); !changed {
		return progress, nil
	}

	if err := t.store.Save(ctx, visitorID, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// ConfirmSupport records that the visitor donated to an organization and
// returns the achievements unlocked by it
func (t *Tracker) ConfirmSupport(ctx context.Context, visitorID, orgID string, status model.Status) (*model.Progress, []model.Achievement, error) {
	if orgID == "" {
		return nil, nil, ErrUnknownOrganization
	}

	var unlocked []model.Achievement
	progress, err := t.update(ctx, visitorID, func(p *model.Progress, now time.Time) bool {
		p.SupportConfirmations = append(p.SupportConfirmations, model.SupportConfirmation{
			OrganizationID: orgID,
			ConfirmedAt:    now,
		})
		if !slices.Contains(p.SupportedOrganizations, orgID) {
			p.SupportedOrganizations = append(p.SupportedOrganizations, orgID)
		}

		// Eligibility is checked against achievements held before this confirmation
		earned := make(map[string]bool, len(p.Achievements))
		for _, a := range p.Achievements {
			earned[a.ID] = true
		}
		award := func(id string, condition bool) {
			if condition && !earned[id] {
				a := unlock(id, now)
				p.Achievements = append(p.Achievements, a)
				unlocked = append(unlocked, a)
			}
		}

		award(AchievementFirstSupport, len(p.SupportConfirmations) == 1)
		award(AchievementThreeOrgs, len(p.SupportedOrganizations) >= ThreeOrgsThreshold)
		award(AchievementFiveOrgs, len(p.SupportedOrganizations) >= FiveOrgsThreshold)
		award(AchievementCriticalSupport, status == model.StatusRed)
		award(AchievementReturnSupporter, distinctMonths(p.SupportConfirmations) >= ReturnMonthsThreshold)
		return true
	})
	if err != nil {
		return nil, nil, err
	}

	if len(unlocked) > 0 {
		t.logger.Info("Achievements unlocked",
			zap.String("visitor", visitorID),
			zap.Int("count", len(unlocked)))
	}
	return progress, unlocked, nil
}

// RecordDonationClick counts a click through to an organization's donation page
func (t *Tracker) RecordDonationClick(ctx context.Context, visitorID, orgID string) (*model.Progress, error) {
	if orgID == "" {
		return nil, ErrUnknownOrganization
	}
	return t.update(ctx, visitorID, func(p *model.Progress, _ time.Time) bool {
		p.TotalClicks++
		return true
	})
}

// RecordWatering grants one watering credit per UTC calendar day and reports
// whether a credit was granted
func (t *Tracker) RecordWatering(ctx context.Context, visitorID string) (*model.Progress, bool, error) {
	granted := false
	progress, err := t.update(ctx, visitorID, func(p *model.Progress, now time.Time) bool {
		if p.LastWateringDate != nil && sameUTCDay(*p.LastWateringDate, now) {
			return false
		}
		p.WateringCredits++
		p.LastWateringDate = &now
		granted = true
		return true
	})
	if err != nil {
		return nil, false, err
	}
	return progress, granted, nil
}

// RecordVisit tracks distinct organization pages viewed and unlocks the explorer badge
func (t *Tracker) RecordVisit(ctx context.Context, visitorID, orgID string) (*model.Progress, []model.Achievement, error) {
	if orgID == "" {
		return nil, nil, ErrUnknownOrganization
	}

	var unlocked []model.Achievement
	progress, err := t.update(ctx, visitorID, func(p *model.Progress, now time.Time) bool {
		if slices.Contains(p.VisitedOrganizations, orgID) {
			return false
		}
		p.VisitedOrganizations = append(p.VisitedOrganizations, orgID)
		if len(p.VisitedOrganizations) >= ExplorerVisitThreshold && !p.HasAchievement(AchievementExplorer) {
			a := unlock(AchievementExplorer, now)
			p.Achievements = append(p.Achievements, a)
			unlocked = append(unlocked, a)
		}
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return progress, unlocked, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// distinctMonths counts distinct UTC year-months across confirmations
func distinctMonths(confirmations []model.SupportConfirmation) int {
	months := make(map[string]struct{}, len(confirmations))
	for _, c := range confirmations {
		months[c.ConfirmedAt.UTC().Format("2006-01")] = struct{}{}
	}
	return len(months)
}
