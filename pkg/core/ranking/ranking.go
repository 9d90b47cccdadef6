package ranking

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// Score weights
const (
	WeightUrgencyLevel = 10.0
	WeightFundingGap   = 20.0
	WeightStaleDay     = 1.5
)

const day = 24 * time.Hour

// DaysSince returns the absolute number of whole days between then and now, rounded up.
// A zero timestamp means the sheet carried no usable update time and yields 0.
func DaysSince(then, now time.Time) int {
	if then.IsZero() {
		return 0
	}
	diff := now.Sub(then)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(day)))
}

// FundingGapRatio returns the unmet fraction of the fundraising target, clamped at 0.
// The second return value is false when there is no record or the target is 0.
func FundingGapRatio(fundraising *model.FundraisingInfo) (float64, bool) {
	if fundraising == nil || fundraising.TargetAmount == 0 {
		return 0, false
	}
	gap := fundraising.TargetAmount - fundraising.RaisedAmount
	return math.Max(0, gap/fundraising.TargetAmount), true
}

// UrgencyScore combines urgency level, funding gap and staleness into a single score.
// Staleness is uncapped: a long-unrefreshed record can outscore a higher tier.
func UrgencyScore(org *model.Organization, fundraising *model.FundraisingInfo, now time.Time) float64 {
	score := float64(org.UrgencyLevel) * WeightUrgencyLevel

	if ratio, ok := FundingGapRatio(fundraising); ok {
		score += ratio * WeightFundingGap
	}

	score += float64(DaysSince(org.LastUpdateAt, now)) * WeightStaleDay

	return roundHalfUp(score, 2)
}

// RankOrganizations merges the latest fundraising and donation records into the
// visible organizations and orders them by urgency level, then donation amount.
func RankOrganizations(
	organizations []model.Organization,
	fundraisingData []model.FundraisingInfo,
	donationData []model.DonationInfo,
) []model.RankedOrganization {
	return RankOrganizationsAt(time.Now(), organizations, fundraisingData, donationData)
}

// RankOrganizationsAt is RankOrganizations with an explicit clock reading
func RankOrganizationsAt(
	now time.Time,
	organizations []model.Organization,
	fundraisingData []model.FundraisingInfo,
	donationData []model.DonationInfo,
) []model.RankedOrganization {
	fundraisingByOrg := latestFundraising(fundraisingData)

	// Later rows overwrite earlier ones regardless of year
	donationByOrg := make(map[string]*model.DonationInfo, len(donationData))
	for i := range donationData {
		donationByOrg[donationData[i].OrganizationID] = &donationData[i]
	}

	ranked := make([]model.RankedOrganization, 0, len(organizations))
	for _, org := range organizations {
		if !org.IsShow {
			continue
		}

		fundraising := copyFundraising(fundraisingByOrg[org.ID])
		entry := model.RankedOrganization{
			Organization: org,
			Fundraising:  fundraising,
			Donation:     copyDonation(donationByOrg[org.ID]),
			UrgencyScore: UrgencyScore(&org, fundraising, now),
		}
		if ratio, ok := FundingGapRatio(fundraising); ok {
			entry.FundingGapRatio = &ratio
		}
		ranked = append(ranked, entry)
	}

	slices.SortStableFunc(ranked, compareByUrgency)
	return ranked
}

// latestFundraising keeps the highest-year record per organization; on equal years the first one seen wins
func latestFundraising(records []model.FundraisingInfo) map[string]*model.FundraisingInfo {
	latest := make(map[string]*model.FundraisingInfo, len(records))
	for i := range records {
		existing, ok := latest[records[i].OrganizationID]
		if !ok || records[i].Year > existing.Year {
			latest[records[i].OrganizationID] = &records[i]
		}
	}
	return latest
}

// compareByUrgency orders by urgency level descending, then by donation amount ascending
// with absent or zero amounts last
func compareByUrgency(a, b model.RankedOrganization) int {
	if a.UrgencyLevel != b.UrgencyLevel {
		return cmp.Compare(b.UrgencyLevel, a.UrgencyLevel)
	}
	return compareDonationAscending(a.DonationAmount(), b.DonationAmount())
}

func compareDonationAscending(a, b float64) int {
	switch {
	case a == 0 && b == 0:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	}
	return cmp.Compare(a, b)
}

func copyFundraising(f *model.FundraisingInfo) *model.FundraisingInfo {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyDonation(d *model.DonationInfo) *model.DonationInfo {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// roundHalfUp rounds to the given number of decimals, ties toward +Inf
func roundHalfUp(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Floor(v*pow+0.5) / pow
}
