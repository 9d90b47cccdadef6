package model

import "time"

// Achievement is a gamification badge; UnlockedAt is nil in the catalog
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// SupportConfirmation records a visitor confirming they donated
type SupportConfirmation struct {
	OrganizationID string    `json:"organizationId"`
	ConfirmedAt    time.Time `json:"confirmedAt"`
}

// Progress is the per-visitor gamification document
type Progress struct {
	SupportedOrganizations []string              `json:"supportedOrganizations"`
	SupportConfirmations   []SupportConfirmation `json:"supportConfirmations"`
	Achievements           []Achievement         `json:"achievements"`
	VisitedOrganizations   []string              `json:"visitedOrganizations"`
	TotalClicks            int                   `json:"totalClicks"`
	LastWateringDate       *time.Time            `json:"lastWateringDate,omitempty"`
	WateringCredits        int                   `json:"wateringCredits"`
}

// NewProgress returns an empty document with non-nil slices
func NewProgress() *Progress {
	return &Progress{
		SupportedOrganizations: []string{},
		SupportConfirmations:   []SupportConfirmation{},
		Achievements:           []Achievement{},
		VisitedOrganizations:   []string{},
	}
}

// Clone returns a deep copy so mirrored documents are never shared
func (p *Progress) Clone() *Progress {
	if p == nil {
		return NewProgress()
	}

	clone := &Progress{
		SupportedOrganizations: append([]string{}, p.SupportedOrganizations...),
		SupportConfirmations:   append([]SupportConfirmation{}, p.SupportConfirmations...),
		Achievements:           make([]Achievement, len(p.Achievements)),
		VisitedOrganizations:   append([]string{}, p.VisitedOrganizations...),
		TotalClicks:            p.TotalClicks,
		WateringCredits:        p.WateringCredits,
	}
	for i, a := range p.Achievements {
		if a.UnlockedAt != nil {
			t := *a.UnlockedAt
			a.UnlockedAt = &t
		}
		clone.Achievements[i] = a
	}
	if p.LastWateringDate != nil {
		t := *p.LastWateringDate
		clone.LastWateringDate = &t
	}
	return clone
}

// HasAchievement reports whether the achievement id has been unlocked
func (p *Progress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}
