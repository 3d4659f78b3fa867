package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed width so lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sutras (
			id TEXT,
			script TEXT,
			title TEXT,
			translator TEXT,
			path TEXT,
			chapters INTEGER,
			paragraphs INTEGER,
			content_hash TEXT,
			indexed_at TEXT,
			PRIMARY KEY (id, script)
		);`,
		`CREATE TABLE IF NOT EXISTS format_runs (
			id TEXT PRIMARY KEY,
			pass TEXT,
			target TEXT,
			files_total INTEGER,
			files_modified INTEGER,
			new_lines INTEGER,
			started_at TEXT,
			finished_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_format_runs_started ON format_runs(started_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- CatalogStore Implementation ---

func (s *SQLiteStore) SaveCatalog(ctx context.Context, entries []CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The catalog is a snapshot of the directory; entries for removed files go.
	if _, err := tx.ExecContext(ctx, `DELETE FROM sutras`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sutras (id, script, title, translator, path, chapters, paragraphs, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, script) DO UPDATE SET
			title=excluded.title,
			translator=excluded.translator,
			path=excluded.path,
			chapters=excluded.chapters,
			paragraphs=excluded.paragraphs,
			content_hash=excluded.content_hash,
			indexed_at=excluded.indexed_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		indexedAt := e.IndexedAt
		if indexedAt.IsZero() {
			indexedAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Script, e.Title, e.Translator, e.Path, e.Chapters, e.Paragraphs, e.ContentHash, indexedAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("failed to save catalog entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, script, title, translator, path, chapters, paragraphs, content_hash, indexed_at FROM sutras ORDER BY id, script")
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetEntry(ctx context.Context, id, script string) (*CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, script, title, translator, path, chapters, paragraphs, content_hash, indexed_at FROM sutras WHERE id = ? AND script = ?", id, script)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("sutra", id+"/"+script)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*CatalogEntry, error) {
	var e CatalogEntry
	var indexedAt string
	if err := row.Scan(&e.ID, &e.Script, &e.Title, &e.Translator, &e.Path, &e.Chapters, &e.Paragraphs, &e.ContentHash, &indexedAt); err != nil {
		return nil, err
	}
	e.IndexedAt, _ = time.Parse(timeLayout, indexedAt)
	return &e, nil
}

// --- RunStore Implementation ---

func (s *SQLiteStore) RecordRun(ctx context.Context, run *FormatRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO format_runs (id, pass, target, files_total, files_modified, new_lines, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Pass, run.Target, run.FilesTotal, run.FilesModified, run.NewLines,
		run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]FormatRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pass, target, files_total, files_modified, new_lines, started_at, finished_at
		FROM format_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []FormatRun
	for rows.Next() {
		var r FormatRun
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Pass, &r.Target, &r.FilesTotal, &r.FilesModified, &r.NewLines, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
