package ranking

import (
	"strings"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/security"
)

// FilterOptions narrows a ranked list; zero values match everything
type FilterOptions struct {
	Query  string
	Status model.Status
	Locale model.Locale
}

// Filter keeps organizations whose status matches and whose localized name or
// description contains the sanitized query, case-insensitively
func Filter(ranked []model.RankedOrganization, opts FilterOptions) []model.RankedOrganization {
	query := strings.ToLower(security.SanitizeSearchInput(opts.Query, security.MaxSearchLength))

	filtered := make([]model.RankedOrganization, 0, len(ranked))
	for _, org := range ranked {
		if opts.Status != "" && org.Status != opts.Status {
			continue
		}
		if query != "" {
			name := strings.ToLower(org.Name(opts.Locale))
			desc := strings.ToLower(org.Description(opts.Locale))
			if !strings.Contains(name, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		filtered = append(filtered, org)
	}
	return filtered
}
