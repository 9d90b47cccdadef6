package cache

import (
	"slices"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// ByOrganization returns the highlights tied to an organization, newest first
func ByOrganization(dataset *sheetsdata.Dataset, orgID string) []model.Highlight {
	return selectHighlights(dataset, func(h *model.Highlight) bool {
		return h.OrganizationID == orgID
	})
}

// Featured returns the highlights marked for the front page, newest first
func Featured(dataset *sheetsdata.Dataset) []model.Highlight {
	return selectHighlights(dataset, func(h *model.Highlight) bool {
		return h.IsFeatured
	})
}

// All returns every highlight, newest first
func All(dataset *sheetsdata.Dataset) []model.Highlight {
	return selectHighlights(dataset, func(*model.Highlight) bool { return true })
}

func selectHighlights(dataset *sheetsdata.Dataset, keep func(h *model.Highlight) bool) []model.Highlight {
	selected := []model.Highlight{}
	if dataset == nil {
		return selected
	}
	for i := range dataset.Highlights {
		if keep(&dataset.Highlights[i]) {
			selected = append(selected, dataset.Highlights[i])
		}
	}
	slices.SortStableFunc(selected, func(a, b model.Highlight) int {
		return b.CuratedAt.Compare(a.CuratedAt)
	})
	return selected
}
