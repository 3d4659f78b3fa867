package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dizang-faith/dizang-faith-web/internal/crawler"
	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/dizang-faith/dizang-faith-web/internal/script"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
)

// Indexer builds the sutra catalog from a directory of documents.
type Indexer struct {
	crawler *crawler.Crawler
	now     func() time.Time
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler) *Indexer {
	return &Indexer{
		crawler: c,
		now:     time.Now,
	}
}

// BuildCatalog scans dir and describes every sutra file found, sorted by id
// then script.
func (i *Indexer) BuildCatalog(dir string) ([]storage.CatalogEntry, error) {
	indexedAt := i.now().UTC()

	var entries []storage.CatalogEntry
	err := i.crawler.ScanDir(dir, func(path string) error {
		e, err := describe(path)
		if err != nil {
			return err
		}
		e.IndexedAt = indexedAt
		entries = append(entries, *e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].ID == entries[b].ID {
			return entries[a].Script < entries[b].Script
		}
		return entries[a].ID < entries[b].ID
	})
	return entries, nil
}

func describe(path string) (*storage.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperrors.IOError{Operation: "read", Path: path, Err: err}
	}
	doc, err := sutra.Decode(data)
	if err != nil {
		return nil, &apperrors.ParseError{Format: "JSON", Path: path, Err: err}
	}

	id, name := script.FromFileName(filepath.Base(path))
	if doc.ID != "" {
		id = doc.ID
	}
	sum := sha256.Sum256(data)

	return &storage.CatalogEntry{
		ID:          id,
		Script:      string(name),
		Title:       doc.Title,
		Translator:  doc.Translator,
		Path:        path,
		Chapters:    len(doc.Chapters),
		Paragraphs:  doc.ParagraphCount(),
		ContentHash: hex.EncodeToString(sum[:]),
	}, nil
}

// SaveCatalog writes the catalog as JSON for static hosting.
func (i *Indexer) SaveCatalog(entries []storage.CatalogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads a catalog written by SaveCatalog.
func (i *Indexer) LoadCatalog(path string) ([]storage.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	var entries []storage.CatalogEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return entries, nil
}
