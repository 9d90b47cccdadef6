package gamification

import (
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
)

// Achievement ids
const (
	AchievementFirstSupport    = "first_support"
	AchievementThreeOrgs       = "three_orgs"
	AchievementFiveOrgs        = "five_orgs"
	AchievementCriticalSupport = "critical_support"
	AchievementReturnSupporter = "return_supporter"
	AchievementExplorer        = "explorer"
)

// Unlock thresholds
const (
	ThreeOrgsThreshold     = 3
	FiveOrgsThreshold      = 5
	ReturnMonthsThreshold  = 2
	ExplorerVisitThreshold = 10
)

var catalog = []model.Achievement{
	{ID: AchievementFirstSupport, Title: "First Steps", Description: "Confirmed support for your first organization", Icon: "🌱"},
	{ID: AchievementThreeOrgs, Title: "Growing Impact", Description: "Supported 3 different organizations", Icon: "🌿"},
	{ID: AchievementFiveOrgs, Title: "Conservation Champion", Description: "Supported 5 different organizations", Icon: "🌳"},
	{ID: AchievementCriticalSupport, Title: "Emergency Responder", Description: "Supported an organization in critical status", Icon: "🚨"},
	{ID: AchievementReturnSupporter, Title: "Committed Conservationist", Description: "Returned to support again in a later month", Icon: "💚"},
	{ID: AchievementExplorer, Title: "Wildlife Explorer", Description: "Visited 10 different organization pages", Icon: "🔍"},
}

// Achievements returns a copy of the catalog in display order
func Achievements() []model.Achievement {
	out := make([]model.Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// unlock returns the catalog entry stamped with the unlock time
func unlock(id string, at time.Time) model.Achievement {
	for _, a := range catalog {
		if a.ID == id {
			a.UnlockedAt = &at
			return a
		}
	}
	return model.Achievement{ID: id, UnlockedAt: &at}
}
