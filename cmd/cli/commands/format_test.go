package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildlifewatch/conservation-hub/pkg/core/donationwindow"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   model.Status
		expected string
	}{
		{model.StatusRed, colorRed},
		{model.StatusOrange, colorOrange},
		{model.StatusYellow, colorYellow},
		{model.StatusGreen, colorGreen},
		{model.StatusBlue, colorBlue},
		{model.StatusPurple, colorPurple},
		{model.StatusGray, colorDim},
		{"unknown", colorDim},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusColor(tt.status))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "Conserva…", truncate("Conservation Society", 9))
	assert.Equal(t, "台灣猛禽…", truncate("台灣猛禽研究會", 5))
}

func TestDescribeWindow(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "open", describeWindow(donationwindow.WindowInfo{IsOpen: true}))
	assert.Equal(t, "closed (2025-09-01 → 2025-10-31), reopens 2025-09-01",
		describeWindow(donationwindow.WindowInfo{StartDate: &start, EndDate: &end, HasFutureWindow: true}))
	assert.Equal(t, "open (- → 2025-10-31)",
		describeWindow(donationwindow.WindowInfo{IsOpen: true, EndDate: &end}))
}

func TestResolveLocale(t *testing.T) {
	locale, err := resolveLocale("", model.LocaleZhTW)
	require.NoError(t, err)
	assert.Equal(t, model.LocaleZhTW, locale)

	locale, err = resolveLocale("EN", model.LocaleZhTW)
	require.NoError(t, err)
	assert.Equal(t, model.LocaleEn, locale)

	_, err = resolveLocale("fr", model.LocaleZhTW)
	assert.ErrorContains(t, err, "unsupported locale")
}

func TestFormatRankRow(t *testing.T) {
	ratio := 0.8
	org := services.OrganizationSummary{
		RankedOrganization: model.RankedOrganization{
			Organization:    model.Organization{ID: "owl", NameEn: "Owl Rescue", UrgencyLevel: 5, Status: model.StatusRed},
			UrgencyScore:    4.5,
			FundingGapRatio: &ratio,
		},
		StatusLabel:   "Most Urgent",
		GapPercentage: "80%",
	}

	row := formatRankRow(1, org, model.LocaleEn)

	assert.True(t, strings.HasPrefix(row, "1    Owl Rescue"))
	assert.Contains(t, row, "4.50")
	assert.Contains(t, row, "80%")
	assert.Contains(t, row, colorRed+"Most Urgent"+colorReset)
}

func TestSortedByCount(t *testing.T) {
	counts := map[string]int{"bat": 2, "owl": 5, "ant": 2}

	assert.Equal(t, []string{"owl", "ant", "bat"}, sortedByCount(counts))
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")

	require.NoError(t, writeOutput(path, []byte("BEGIN:VCALENDAR")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(data))
}
