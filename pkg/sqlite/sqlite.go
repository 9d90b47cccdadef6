// Package sqlite stores visitor progress in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/db"
)

var _ db.ProgressStore = (*DB)(nil)

// DB persists progress documents to SQLite
type DB struct {
	conn   *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// Open opens (or creates) the database and runs migrations
func Open(path string, logger *zap.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// WAL lets readers proceed while a save is in flight
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &DB{conn: conn, logger: logger}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}

	logger.Info("SQLite progress store opened", zap.String("path", path))
	return d, nil
}

func (d *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitor_progress (
			visitor_id TEXT PRIMARY KEY,
			document   TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS support_confirmation (
			visitor_id      TEXT NOT NULL,
			organization_id TEXT NOT NULL,
			confirmed_at    INTEGER NOT NULL,
			PRIMARY KEY (visitor_id, organization_id, confirmed_at)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_support_org ON support_confirmation(organization_id)`,
	}

	for _, s := range stmts {
		if _, err := d.conn.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (d *DB) GetProgress(ctx context.Context, visitorID string) (*model.Progress, error) {
	var document string
	err := d.conn.QueryRowContext(ctx,
		`SELECT document FROM visitor_progress WHERE visitor_id = ?`, visitorID,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}

	progress := model.NewProgress()
	if err := json.Unmarshal([]byte(document), progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return progress, nil
}

func (d *DB) PutProgress(ctx context.Context, visitorID string, progress *model.Progress) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	document, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO visitor_progress (visitor_id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(visitor_id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		visitorID, string(document), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	for _, c := range progress.SupportConfirmations {
		_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO support_confirmation
			(visitor_id, organization_id, confirmed_at) VALUES (?, ?, ?)`,
			visitorID, c.OrganizationID, c.ConfirmedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert support confirmation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress: %w", err)
	}
	return nil
}

func (d *DB) ListVisitors(ctx context.Context) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT visitor_id FROM visitor_progress ORDER BY visitor_id`)
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
	return ids, rows.Err()
}

// SupportCounts returns the number of distinct supporters per organization
func (d *DB) SupportCounts(ctx context.Context) (map[string]int, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT organization_id, COUNT(DISTINCT visitor_id)
		FROM support_confirmation GROUP BY organization_id`)
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
	return counts, rows.Err()
}

func (d *DB) Close() error {
	d.logger.Info("Closing SQLite progress store")
	return d.conn.Close()
}
