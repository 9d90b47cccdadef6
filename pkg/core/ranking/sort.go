package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

type SortMode string

const (
	SortUrgency      SortMode = "urgency"
	SortDonationLow  SortMode = "donation_low"
	SortDonationHigh SortMode = "donation_high"
)

// DefaultSortMode matches the home page default
const DefaultSortMode = SortDonationLow

// ParseSortMode validates a sort mode string; empty selects the default
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "":
		return DefaultSortMode, nil
	case SortUrgency, SortDonationLow, SortDonationHigh:
		return SortMode(s), nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Sort returns a re-ordered copy of an already ranked list.
// SortUrgency keeps the engine order. The donation modes put absent or zero
// amounts last and break ties by urgency level descending.
func Sort(ranked []model.RankedOrganization, mode SortMode) []model.RankedOrganization {
	sorted := slices.Clone(ranked)

	switch mode {
	case SortDonationLow:
		slices.SortStableFunc(sorted, func(a, b model.RankedOrganization) int {
			return compareDonation(a, b, false)
		})
	case SortDonationHigh:
		slices.SortStableFunc(sorted, func(a, b model.RankedOrganization) int {
			return compareDonation(a, b, true)
		})
	}

	return sorted
}

func compareDonation(a, b model.RankedOrganization, descending bool) int {
	amountA, amountB := a.DonationAmount(), b.DonationAmount()

	switch {
	case amountA == 0 && amountB == 0:
		return cmp.Compare(b.UrgencyLevel, a.UrgencyLevel)
	case amountA == 0:
		return 1
	case amountB == 0:
		return -1
	}

	if descending {
		return cmp.Compare(amountB, amountA)
	}
	return cmp.Compare(amountA, amountB)
}
