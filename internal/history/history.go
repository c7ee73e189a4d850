// Package history persists per-run audit summaries in SQLite so trends
// (is the broken-link count going down?) survive between invocations.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docaudit/internal/audit"
	"git.home.luguber.info/inful/docaudit/internal/errors"
)

// Run is one recorded audit.
type Run struct {
	ID     string // uuid assigned by the caller
	At     time.Time
	Head   string // monorepo HEAD short hash, empty when not a repository
	Counts audit.Counts
}

// Store is a SQLite-backed history of audit runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.StorageError("open", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.StorageError("initialize", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_runs (
		id TEXT PRIMARY KEY,
		ts INTEGER NOT NULL,
		head TEXT,
		nav_missing INTEGER NOT NULL,
		ghost INTEGER NOT NULL,
		help_missing INTEGER NOT NULL,
		broken_links INTEGER NOT NULL,
		missing_images INTEGER NOT NULL,
		orphan_images INTEGER NOT NULL,
		footnotes INTEGER NOT NULL,
		total INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_runs_ts ON audit_runs(ts);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one run.
func (s *Store) Record(ctx context.Context, run Run) error {
	c := run.Counts
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_runs
		 (id, ts, head, nav_missing, ghost, help_missing, broken_links, missing_images, orphan_images, footnotes, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.At.Unix(), run.Head,
		c.NavMissing, c.Ghost, c.HelpMissing, c.BrokenLinks,
		c.MissingImages, c.OrphanImages, c.Footnotes, c.Total,
	)
	if err != nil {
		return errors.StorageError("record", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, head, nav_missing, ghost, help_missing, broken_links, missing_images, orphan_images, footnotes, total
		 FROM audit_runs ORDER BY ts DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.StorageError("query", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts int64
		if err := rows.Scan(&r.ID, &ts, &r.Head,
			&r.Counts.NavMissing, &r.Counts.Ghost, &r.Counts.HelpMissing,
			&r.Counts.BrokenLinks, &r.Counts.MissingImages, &r.Counts.OrphanImages,
			&r.Counts.Footnotes, &r.Counts.Total); err != nil {
			return nil, errors.StorageError("scan", err)
		}
		r.At = time.Unix(ts, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
