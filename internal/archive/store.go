package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store records which archive item completed which pipeline stage, backed by
// SQLite. Stages consult it to skip work that already finished.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS stage_completions (
    show         TEXT NOT NULL,
    stage        TEXT NOT NULL,
    item         TEXT NOT NULL,
    completed_at TEXT NOT NULL,
    PRIMARY KEY (show, stage, item)
);
`

// Open initializes or connects to the state database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// MarkCompleted records that item finished stage for show. Marking an already
// completed item is a no-op.
func (s *Store) MarkCompleted(ctx context.Context, show, stage, item string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO stage_completions (show, stage, item, completed_at) VALUES (?, ?, ?, ?)`,
		show, stage, item, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// Completed reports whether item already finished stage for show.
func (s *Store) Completed(ctx context.Context, show, stage, item string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM stage_completions WHERE show = ? AND stage = ? AND item = ?`,
		show, stage, item,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query completion: %w", err)
	}
	return true, nil
}

// CompletedItems returns every item recorded for the given show and stage.
func (s *Store) CompletedItems(ctx context.Context, show, stage string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item FROM stage_completions WHERE show = ? AND stage = ?`,
		show, stage,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	items := map[string]struct{}{}
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		items[item] = struct{}{}
	}
	return items, rows.Err()
}

// StageCounts returns per-stage completion counts for one show.
func (s *Store) StageCounts(ctx context.Context, show string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, COUNT(*) FROM stage_completions WHERE show = ? GROUP BY stage`,
		show,
	)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[stage] = count
	}
	return counts, rows.Err()
}
