package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wildlifewatch/conservation-hub/pkg/sheetsdata"
)

// InspectColumns reports the organizations tab layout, bypassing the cache
func InspectColumns(ctx context.Context, source ColumnSource, logger *zap.Logger) (*sheetsdata.ColumnReport, error) {
	report, err := source.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect columns: %w", err)
	}
	if len(report.MissingColumns) > 0 {
		logger.Warn("Organizations tab is missing columns", zap.Strings("missing", report.MissingColumns))
	}
	return report, nil
}
