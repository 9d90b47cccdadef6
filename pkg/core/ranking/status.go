package ranking

import "github.com/wildlifewatch/conservation-hub/pkg/core/model"

// StatusFromGap maps a funding gap ratio onto a status tier.
// Organizations without fundraising data default to yellow.
func StatusFromGap(ratio float64, ok bool) model.Status {
	if !ok {
		return model.StatusYellow
	}

	switch {
	case ratio > 0.7:
		return model.StatusRed
	case ratio > 0.3:
		return model.StatusOrange
	case ratio > 0.1:
		return model.StatusYellow
	default:
		return model.StatusGreen
	}
}

// StatusLabel returns the English label for a tier.
// Localized labels live in the i18n catalog under "status.<tier>.label".
func StatusLabel(status model.Status) string {
	switch status {
	case model.StatusRed:
		return "Most Urgent"
	case model.StatusOrange:
		return "Needs Immediate Support"
	case model.StatusYellow:
		return "Ongoing Support Needed"
	case model.StatusGreen:
		return "Stable"
	case model.StatusBlue:
		return "Well Resourced"
	case model.StatusPurple:
		return "Highly Resourced"
	default:
		return "Unknown Status"
	}
}

// StatusDescription returns the English fundraising band for a tier
func StatusDescription(status model.Status) string {
	switch status {
	case model.StatusRed:
		return "Annual fundraising under 1 million NTD"
	case model.StatusOrange:
		return "Annual fundraising between 1-3 million NTD"
	case model.StatusYellow:
		return "Annual fundraising between 3-6 million NTD"
	case model.StatusGreen:
		return "Annual fundraising between 6-15 million NTD"
	case model.StatusBlue:
		return "Annual fundraising between 15-100 million NTD"
	case model.StatusPurple:
		return "Annual fundraising over 100 million NTD"
	default:
		return "Annual fundraising status unknown"
	}
}
