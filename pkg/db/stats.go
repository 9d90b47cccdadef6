package db

import (
	"context"
	"fmt"
)

// CountSupport returns the number of support confirmations per organization.
// Backends without a SupportCounter are scanned document by document.
func CountSupport(ctx context.Context, store ProgressStore) (map[string]int, error) {
	if counter, ok := store.(SupportCounter); ok {
		return counter.SupportCounts(ctx)
	}

	visitors, err := store.ListVisitors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}

	counts := make(map[string]int)
	for _, visitorID := range visitors {
		progress, err := store.GetProgress(ctx, visitorID)
		if err != nil {
			return nil, fmt.Errorf("failed to read progress for %s: %w", visitorID, err)
		}
		for _, c := range progress.SupportConfirmations {
			counts[c.OrganizationID]++
		}
	}
	return counts, nil
}
