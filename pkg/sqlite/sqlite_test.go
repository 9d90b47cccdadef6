package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	database, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestProgressRoundTrip(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "progress.db"))
	ctx := context.Background()

	_, err := database.GetProgress(ctx, "v1")
	assert.ErrorIs(t, err, db.ErrNotFound)

	confirmed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	progress := model.NewProgress()
	progress.SupportedOrganizations = []string{"owl", "turtle"}
	progress.SupportConfirmations = []model.SupportConfirmation{
		{OrganizationID: "owl", ConfirmedAt: confirmed},
		{OrganizationID: "turtle", ConfirmedAt: confirmed.Add(time.Hour)},
	}
	progress.WateringCredits = 5

	require.NoError(t, database.PutProgress(ctx, "v1", progress))
	require.NoError(t, database.PutProgress(ctx, "v1", progress))

	got, err := database.GetProgress(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"owl", "turtle"}, got.SupportedOrganizations)
	assert.Equal(t, 5, got.WateringCredits)
	require.Len(t, got.SupportConfirmations, 2)
	assert.True(t, confirmed.Equal(got.SupportConfirmations[0].ConfirmedAt))
}

func TestListVisitorsAndSupportCounts(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "progress.db"))
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, visitor := range []string{"v2", "v1"} {
		p := model.NewProgress()
		p.SupportConfirmations = []model.SupportConfirmation{{OrganizationID: "owl", ConfirmedAt: now}}
		require.NoError(t, database.PutProgress(ctx, visitor, p))
	}

	visitors, err := database.ListVisitors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, visitors)

	counts, err := database.SupportCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"owl": 2}, counts)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	ctx := context.Background()

	first, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	p := model.NewProgress()
	p.TotalClicks = 9
	require.NoError(t, first.PutProgress(ctx, "v1", p))
	require.NoError(t, first.Close())

	second := openTestDB(t, path)
	got, err := second.GetProgress(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.TotalClicks)
}
