package gamification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

const visitor = "7f3c9a52-3f4e-4c1b-9d3e-0b8a2f6d1e44"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// failingBackend rejects every write
type failingBackend struct {
	*db.MemoryDB
}

func (failingBackend) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	return errors.New("disk full")
}

// flakyBackend rejects the next failures writes, then behaves like MemoryDB
type flakyBackend struct {
	*db.MemoryDB
	failures int
}

func (b *flakyBackend) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	if b.failures > 0 {
		b.failures--
		return errors.New("disk full")
	}
	return b.MemoryDB.PutProgress(ctx, visitorID, progress)
}

func newTestTracker(t *testing.T) (*Tracker, *fakeClock, *Store) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := NewStore(db.NewMemoryDB(), zap.NewNop())
	return NewTracker(store, clock, zap.NewNop()), clock, store
}

func achievementIDs(achievements []model.Achievement) []string {
	ids := make([]string, len(achievements))
	for i, a := range achievements {
		ids[i] = a.ID
	}
	return ids
}

func TestAchievementsCatalog(t *testing.T) {
	all := Achievements()
	assert.Equal(t, []string{
		AchievementFirstSupport, AchievementThreeOrgs, AchievementFiveOrgs,
		AchievementCriticalSupport, AchievementReturnSupporter, AchievementExplorer,
	}, achievementIDs(all))

	all[0].Title = "changed"
	assert.Equal(t, "First Steps", Achievements()[0].Title)
}

func TestValidateVisitorID(t *testing.T) {
	assert.NoError(t, ValidateVisitorID(NewVisitorID()))
	assert.ErrorIs(t, ValidateVisitorID("../etc/passwd"), ErrInvalidVisitorID)
	assert.ErrorIs(t, ValidateVisitorID(""), ErrInvalidVisitorID)
}

func TestConfirmSupport_FirstSupport(t *testing.T) {
	tracker, clock, _ := newTestTracker(t)
	ctx := context.Background()

	progress, unlocked, err := tracker.ConfirmSupport(ctx, visitor, "owl", model.StatusGreen)

	require.NoError(t, err)
	assert.Equal(t, []string{AchievementFirstSupport}, achievementIDs(unlocked))
	require.NotNil(t, unlocked[0].UnlockedAt)
	assert.Equal(t, clock.now, *unlocked[0].UnlockedAt)
	assert.Equal(t, []string{"owl"}, progress.SupportedOrganizations)
	require.Len(t, progress.SupportConfirmations, 1)
	assert.Equal(t, clock.now, progress.SupportConfirmations[0].ConfirmedAt)
}

func TestConfirmSupport_CriticalStatus(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	_, unlocked, err := tracker.ConfirmSupport(context.Background(), visitor, "turtle", model.StatusRed)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{AchievementFirstSupport, AchievementCriticalSupport}, achievementIDs(unlocked))
}

func TestConfirmSupport_OrganizationThresholds(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	var all []string
	for _, org := range []string{"a", "b", "a", "c", "d", "e"} {
		_, unlocked, err := tracker.ConfirmSupport(ctx, visitor, org, model.StatusYellow)
		require.NoError(t, err)
		all = append(all, achievementIDs(unlocked)...)
	}

	assert.Equal(t, []string{AchievementFirstSupport, AchievementThreeOrgs, AchievementFiveOrgs}, all)

	progress, err := tracker.Progress(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, progress.SupportedOrganizations)
	assert.Len(t, progress.SupportConfirmations, 6)
}

func TestConfirmSupport_ReturnSupporter(t *testing.T) {
	tracker, clock, _ := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tracker.ConfirmSupport(ctx, visitor, "owl", model.StatusGreen)
	require.NoError(t, err)

	clock.now = clock.now.AddDate(0, 0, 5)
	_, unlocked, err := tracker.ConfirmSupport(ctx, visitor, "owl", model.StatusGreen)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	clock.now = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	_, unlocked, err = tracker.ConfirmSupport(ctx, visitor, "owl", model.StatusGreen)
	require.NoError(t, err)
	assert.Equal(t, []string{AchievementReturnSupporter}, achievementIDs(unlocked))
}

func TestConfirmSupport_RequiresOrganization(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	_, _, err := tracker.ConfirmSupport(context.Background(), visitor, "", model.StatusRed)
	assert.ErrorIs(t, err, ErrUnknownOrganization)
}

func TestConfirmSupport_RejectsInvalidVisitor(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	_, _, err := tracker.ConfirmSupport(context.Background(), "not-a-uuid", "owl", model.StatusRed)
	assert.ErrorIs(t, err, ErrInvalidVisitorID)
}

func TestRecordDonationClick(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := tracker.RecordDonationClick(ctx, visitor, "owl")
		require.NoError(t, err)
	}

	progress, err := tracker.Progress(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalClicks)
}

func TestRecordWatering_OncePerUTCDay(t *testing.T) {
	tracker, clock, _ := newTestTracker(t)
	ctx := context.Background()

	progress, granted, err := tracker.RecordWatering(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, progress.WateringCredits)

	clock.now = clock.now.Add(11 * time.Hour) // 23:00 UTC same day
	progress, granted, err = tracker.RecordWatering(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, 1, progress.WateringCredits)

	clock.now = clock.now.Add(2 * time.Hour) // next UTC day
	progress, granted, err = tracker.RecordWatering(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 2, progress.WateringCredits)
	require.NotNil(t, progress.LastWateringDate)
	assert.Equal(t, clock.now, *progress.LastWateringDate)
}

func TestRecordVisit_Explorer(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		_, unlocked, err := tracker.RecordVisit(ctx, visitor, string(rune('a'+i)))
		require.NoError(t, err)
		assert.Empty(t, unlocked)
	}

	// Revisits do not count
	_, unlocked, err := tracker.RecordVisit(ctx, visitor, "a")
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	progress, unlocked, err := tracker.RecordVisit(ctx, visitor, "j")
	require.NoError(t, err)
	assert.Equal(t, []string{AchievementExplorer}, achievementIDs(unlocked))
	assert.Len(t, progress.VisitedOrganizations, 10)
}

func TestStore_LoadMissingReturnsEmpty(t *testing.T) {
	store := NewStore(db.NewMemoryDB(), zap.NewNop())

	progress, err := store.Load(context.Background(), visitor)

	require.NoError(t, err)
	assert.NotNil(t, progress.SupportedOrganizations)
	assert.Zero(t, progress.TotalClicks)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := NewStore(db.NewMemoryDB(), zap.NewNop())
	ctx := context.Background()

	var seen []int
	unsubscribe := store.Subscribe(func(visitorID string, p *model.Progress) {
		assert.Equal(t, visitor, visitorID)
		seen = append(seen, p.TotalClicks)
	})

	p := model.NewProgress()
	p.TotalClicks = 1
	require.NoError(t, store.Save(ctx, visitor, p))

	unsubscribe()
	unsubscribe()

	p.TotalClicks = 2
	require.NoError(t, store.Save(ctx, visitor, p))

	assert.Equal(t, []int{1}, seen)
}

func TestStore_FailedSaveRestoresMirror(t *testing.T) {
	backend := &flakyBackend{MemoryDB: db.NewMemoryDB()}
	store := NewStore(backend, zap.NewNop())
	ctx := context.Background()

	notified := 0
	store.Subscribe(func(string, *model.Progress) { notified++ })

	p := model.NewProgress()
	p.TotalClicks = 3
	require.NoError(t, store.Save(ctx, visitor, p))

	backend.failures = 1
	p.TotalClicks = 7
	err := store.Save(ctx, visitor, p)

	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, notified)
	loaded, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.TotalClicks)
}

func TestStore_FailedFirstSaveLeavesNoMirror(t *testing.T) {
	store := NewStore(failingBackend{db.NewMemoryDB()}, zap.NewNop())
	ctx := context.Background()

	p := model.NewProgress()
	p.TotalClicks = 7
	assert.ErrorContains(t, store.Save(ctx, visitor, p), "disk full")

	loaded, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	assert.Zero(t, loaded.TotalClicks)
}

func TestRecordWatering_RetryAfterFailedSave(t *testing.T) {
	backend := &flakyBackend{MemoryDB: db.NewMemoryDB(), failures: 1}
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	tracker := NewTracker(NewStore(backend, zap.NewNop()), clock, zap.NewNop())
	ctx := context.Background()

	_, _, err := tracker.RecordWatering(ctx, visitor)
	require.ErrorContains(t, err, "disk full")

	progress, granted, err := tracker.RecordWatering(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, progress.WateringCredits)

	stored, err := backend.GetProgress(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.WateringCredits)
}

func TestStore_LoadReturnsCopies(t *testing.T) {
	store := NewStore(db.NewMemoryDB(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, visitor, model.NewProgress()))

	first, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	first.SupportedOrganizations = append(first.SupportedOrganizations, "leak")

	second, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, second.SupportedOrganizations)
}
