package model

import "time"

type HighlightCategory string

const (
	HighlightRescue      HighlightCategory = "rescue"
	HighlightEducation   HighlightCategory = "education"
	HighlightFundraising HighlightCategory = "fundraising"
	HighlightMilestone   HighlightCategory = "milestone"
	HighlightPolicy      HighlightCategory = "policy"
)

// Highlight is a curated news item, optionally tied to an organization
type Highlight struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organizationId,omitempty"`
	TitleZh        string            `json:"titleZh"`
	TitleEn        string            `json:"titleEn"`
	SummaryZh      string            `json:"summaryZh"`
	SummaryEn      string            `json:"summaryEn"`
	SourceURL      string            `json:"sourceUrl"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	CuratedAt      time.Time         `json:"curatedAt"`
	Category       HighlightCategory `json:"category"`
	IsFeatured     bool              `json:"isFeatured"`
}

func (h *Highlight) Title(locale Locale) string {
	if locale == LocaleEn {
		return h.TitleEn
	}
	return h.TitleZh
}

func (h *Highlight) Summary(locale Locale) string {
	if locale == LocaleEn {
		return h.SummaryEn
	}
	return h.SummaryZh
}
