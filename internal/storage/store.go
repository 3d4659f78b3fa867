package storage

import (
	"context"
	"time"
)

// Store combines the sutra catalog and the formatting history.
type Store interface {
	CatalogStore
	RunStore
	Close() error
}

// CatalogEntry describes one sutra file on disk.
type CatalogEntry struct {
	ID          string    `json:"id"`
	Script      string    `json:"script"`
	Title       string    `json:"title"`
	Translator  string    `json:"translator"`
	Path        string    `json:"-"`
	Chapters    int       `json:"chapters"`
	Paragraphs  int       `json:"paragraphs"`
	ContentHash string    `json:"contentHash"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// FormatRun records one invocation of a formatting pass.
type FormatRun struct {
	ID            string
	Pass          string
	Target        string
	FilesTotal    int
	FilesModified int
	NewLines      int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// CatalogStore persists the sutra catalog.
type CatalogStore interface {
	// SaveCatalog replaces the stored catalog with entries.
	SaveCatalog(ctx context.Context, entries []CatalogEntry) error

	// ListCatalog returns every entry ordered by id then script.
	ListCatalog(ctx context.Context) ([]CatalogEntry, error)

	// GetEntry returns the entry for a sutra id in one script.
	GetEntry(ctx context.Context, id, script string) (*CatalogEntry, error)
}

// RunStore persists formatting history.
type RunStore interface {
	// RecordRun stores a run, assigning an id when it has none.
	RecordRun(ctx context.Context, run *FormatRun) error

	// ListRuns returns the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]FormatRun, error)
}
