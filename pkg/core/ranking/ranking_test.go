package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ids(ranked []model.RankedOrganization) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name     string
		then     time.Time
		expected int
	}{
		{"same instant", testNow, 0},
		{"exactly one day", testNow.Add(-24 * time.Hour), 1},
		{"partial day rounds up", testNow.Add(-25 * time.Hour), 2},
		{"future timestamp uses absolute value", testNow.Add(36 * time.Hour), 2},
		{"zero time contributes nothing", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysSince(tt.then, testNow))
		})
	}
}

func TestFundingGapRatio(t *testing.T) {
	t.Run("seventy percent gap", func(t *testing.T) {
		ratio, ok := FundingGapRatio(&model.FundraisingInfo{TargetAmount: 1_000_000, RaisedAmount: 300_000})
		require.True(t, ok)
		assert.Equal(t, 0.7, ratio)
	})

	t.Run("over-achieved goal clamps to zero", func(t *testing.T) {
		ratio, ok := FundingGapRatio(&model.FundraisingInfo{TargetAmount: 100, RaisedAmount: 250})
		require.True(t, ok)
		assert.Equal(t, 0.0, ratio)
	})

	t.Run("nothing raised", func(t *testing.T) {
		ratio, ok := FundingGapRatio(&model.FundraisingInfo{TargetAmount: 500, RaisedAmount: 0})
		require.True(t, ok)
		assert.Equal(t, 1.0, ratio)
	})

	t.Run("zero target is undefined", func(t *testing.T) {
		_, ok := FundingGapRatio(&model.FundraisingInfo{TargetAmount: 0, RaisedAmount: 10})
		assert.False(t, ok)
	})

	t.Run("missing record is undefined", func(t *testing.T) {
		_, ok := FundingGapRatio(nil)
		assert.False(t, ok)
	})
}

func TestUrgencyScore(t *testing.T) {
	org := &model.Organization{UrgencyLevel: 4, LastUpdateAt: testNow.Add(-3 * 24 * time.Hour)}

	t.Run("without fundraising", func(t *testing.T) {
		// 4*10 + 3*1.5
		assert.Equal(t, 44.5, UrgencyScore(org, nil, testNow))
	})

	t.Run("with funding gap", func(t *testing.T) {
		fundraising := &model.FundraisingInfo{TargetAmount: 1_000_000, RaisedAmount: 300_000}
		// 40 + 0.7*20 + 4.5
		assert.Equal(t, 58.5, UrgencyScore(org, fundraising, testNow))
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		fundraising := &model.FundraisingInfo{TargetAmount: 3, RaisedAmount: 2}
		// 40 + (1/3)*20 + 4.5 = 51.1666...
		assert.Equal(t, 51.17, UrgencyScore(org, fundraising, testNow))
	})

	t.Run("staleness is uncapped", func(t *testing.T) {
		stale := &model.Organization{UrgencyLevel: 1, LastUpdateAt: testNow.AddDate(0, 0, -100)}
		fresh := &model.Organization{UrgencyLevel: 5, LastUpdateAt: testNow}
		assert.Greater(t, UrgencyScore(stale, nil, testNow), UrgencyScore(fresh, nil, testNow))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, UrgencyScore(org, nil, testNow), UrgencyScore(org, nil, testNow))
	})
}

func TestRankOrganizations_ExcludesHidden(t *testing.T) {
	orgs := []model.Organization{
		{ID: "visible", IsShow: true, UrgencyLevel: 3},
		{ID: "hidden", IsShow: false, UrgencyLevel: 5},
	}

	ranked := RankOrganizationsAt(testNow, orgs, nil, nil)

	assert.Equal(t, []string{"visible"}, ids(ranked))
}

func TestRankOrganizations_UrgencyLevelDescending(t *testing.T) {
	orgs := []model.Organization{
		{ID: "low", IsShow: true, UrgencyLevel: 1},
		{ID: "high", IsShow: true, UrgencyLevel: 5},
		{ID: "mid", IsShow: true, UrgencyLevel: 3},
	}

	ranked := RankOrganizationsAt(testNow, orgs, nil, nil)

	assert.Equal(t, []string{"high", "mid", "low"}, ids(ranked))
}

func TestRankOrganizations_PositiveDonationBeforeAbsent(t *testing.T) {
	orgs := []model.Organization{
		{ID: "A", IsShow: true, UrgencyLevel: 5},
		{ID: "B", IsShow: true, UrgencyLevel: 5},
	}
	donations := []model.DonationInfo{{OrganizationID: "B", Amount: 1000, Year: 2024}}

	ranked := RankOrganizationsAt(testNow, orgs, nil, donations)

	assert.Equal(t, []string{"B", "A"}, ids(ranked))
}

func TestRankOrganizations_DonationAscendingWithinLevel(t *testing.T) {
	orgs := []model.Organization{
		{ID: "zero", IsShow: true, UrgencyLevel: 4},
		{ID: "big", IsShow: true, UrgencyLevel: 4},
		{ID: "none-1", IsShow: true, UrgencyLevel: 4},
		{ID: "small", IsShow: true, UrgencyLevel: 4},
		{ID: "none-2", IsShow: true, UrgencyLevel: 4},
	}
	donations := []model.DonationInfo{
		{OrganizationID: "zero", Amount: 0},
		{OrganizationID: "big", Amount: 5_000_000},
		{OrganizationID: "small", Amount: 20_000},
	}

	ranked := RankOrganizationsAt(testNow, orgs, nil, donations)

	// Absent and zero amounts keep their input order at the end
	assert.Equal(t, []string{"small", "big", "zero", "none-1", "none-2"}, ids(ranked))
}

func TestRankOrganizations_LatestFundraisingYear(t *testing.T) {
	orgs := []model.Organization{{ID: "org", IsShow: true, UrgencyLevel: 2}}
	fundraising := []model.FundraisingInfo{
		{OrganizationID: "org", Year: 2023, TargetAmount: 100, RaisedAmount: 100},
		{OrganizationID: "org", Year: 2025, TargetAmount: 100, RaisedAmount: 20, ActivityNameEn: "first 2025"},
		{OrganizationID: "org", Year: 2024, TargetAmount: 100, RaisedAmount: 50},
		{OrganizationID: "org", Year: 2025, TargetAmount: 100, RaisedAmount: 90, ActivityNameEn: "second 2025"},
	}

	ranked := RankOrganizationsAt(testNow, orgs, fundraising, nil)

	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].Fundraising)
	assert.Equal(t, "first 2025", ranked[0].Fundraising.ActivityNameEn)
	require.NotNil(t, ranked[0].FundingGapRatio)
	assert.Equal(t, 0.8, *ranked[0].FundingGapRatio)
}

func TestRankOrganizations_LastDonationRowWins(t *testing.T) {
	orgs := []model.Organization{{ID: "org", IsShow: true, UrgencyLevel: 2}}
	donations := []model.DonationInfo{
		{OrganizationID: "org", Year: 2025, Amount: 900},
		{OrganizationID: "org", Year: 2023, Amount: 100},
	}

	ranked := RankOrganizationsAt(testNow, orgs, nil, donations)

	require.NotNil(t, ranked[0].Donation)
	assert.Equal(t, 2023, ranked[0].Donation.Year)
	assert.Equal(t, 100.0, ranked[0].Donation.Amount)
}

func TestRankOrganizations_GapRatioAbsentForZeroTarget(t *testing.T) {
	orgs := []model.Organization{
		{ID: "zero-target", IsShow: true, UrgencyLevel: 1},
		{ID: "no-data", IsShow: true, UrgencyLevel: 1},
	}
	fundraising := []model.FundraisingInfo{{OrganizationID: "zero-target", Year: 2025, TargetAmount: 0}}

	ranked := RankOrganizationsAt(testNow, orgs, fundraising, nil)

	for _, r := range ranked {
		assert.Nil(t, r.FundingGapRatio, r.ID)
	}
	assert.NotNil(t, ranked[0].Fundraising)
}

func TestRankOrganizations_DoesNotMutateInputs(t *testing.T) {
	orgs := []model.Organization{
		{ID: "a", IsShow: true, UrgencyLevel: 1},
		{ID: "b", IsShow: true, UrgencyLevel: 5},
	}
	fundraising := []model.FundraisingInfo{{OrganizationID: "a", Year: 2025, TargetAmount: 10, RaisedAmount: 1}}

	ranked := RankOrganizationsAt(testNow, orgs, fundraising, nil)
	ranked[1].Fundraising.RaisedAmount = 999

	assert.Equal(t, "a", orgs[0].ID)
	assert.Equal(t, 1.0, fundraising[0].RaisedAmount)
}

func TestRankOrganizations_PairwiseOrderProperty(t *testing.T) {
	var orgs []model.Organization
	var donations []model.DonationInfo
	for i := 0; i < 30; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		orgs = append(orgs, model.Organization{ID: id, IsShow: i%7 != 0, UrgencyLevel: i%5 + 1})
		if i%3 != 0 {
			donations = append(donations, model.DonationInfo{OrganizationID: id, Amount: float64((i * 7919) % 1000)})
		}
	}

	ranked := RankOrganizationsAt(testNow, orgs, nil, donations)

	for i := 0; i < len(ranked); i++ {
		assert.True(t, ranked[i].IsShow)
		for j := i + 1; j < len(ranked); j++ {
			a, b := ranked[i], ranked[j]
			assert.GreaterOrEqual(t, a.UrgencyLevel, b.UrgencyLevel)
			if a.UrgencyLevel != b.UrgencyLevel {
				continue
			}
			if a.DonationAmount() > 0 && b.DonationAmount() > 0 {
				assert.LessOrEqual(t, a.DonationAmount(), b.DonationAmount())
			}
			if a.DonationAmount() == 0 {
				assert.Equal(t, 0.0, b.DonationAmount(), "positive amount after zero amount: %s, %s", a.ID, b.ID)
			}
		}
		if ranked[i].FundingGapRatio != nil {
			assert.False(t, math.IsNaN(*ranked[i].FundingGapRatio))
		}
	}
}

func TestRankOrganizations_Empty(t *testing.T) {
	ranked := RankOrganizationsAt(testNow, nil, nil, nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
