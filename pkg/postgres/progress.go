package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

var _ db.ProgressStore = (*DB)(nil)

// GetProgress retrieves a visitor's progress document
func (d *DB) GetProgress(ctx context.Context, visitorID string) (*model.Progress, error) {
	var document []byte
	err := d.pool.QueryRow(ctx, `
		SELECT document FROM visitor_progress WHERE visitor_id = $1
	`, visitorID).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}

	progress := model.NewProgress()
	if err := json.Unmarshal(document, progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return progress, nil
}

// PutProgress upserts the document and mirrors its support confirmations
func (d *DB) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	document, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO visitor_progress (visitor_id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (visitor_id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`, visitorID, document)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range progress.SupportConfirmations {
		batch.Queue(`
			INSERT INTO support_confirmation (visitor_id, organization_id, confirmed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, visitorID, c.OrganizationID, c.ConfirmedAt.UTC())
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert support confirmations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit progress: %w", err)
	}
	return nil
}

// ListVisitors returns every visitor id with stored progress
func (d *DB) ListVisitors(ctx context.Context) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT visitor_id FROM visitor_progress ORDER BY visitor_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query visitors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan visitor id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visitors: %w", err)
	}
	return ids, nil
}

// SupportCounts returns the number of distinct supporters per organization
func (d *DB) SupportCounts(ctx context.Context) (map[string]int, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT organization_id, COUNT(DISTINCT visitor_id)
		FROM support_confirmation
		GROUP BY organization_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query support counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var orgID string
		var count int
		if err := rows.Scan(&orgID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan support count: %w", err)
		}
		counts[orgID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating support counts: %w", err)
	}
	return counts, nil
}
