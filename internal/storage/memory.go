package storage

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
)

// MemoryCatalog is a CatalogStore held in memory, used to serve a catalog
// exported as JSON without a database.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries []CatalogEntry
}

// NewMemoryCatalog creates a catalog holding entries.
func NewMemoryCatalog(entries []CatalogEntry) *MemoryCatalog {
	m := &MemoryCatalog{}
	m.replace(entries)
	return m
}

func (m *MemoryCatalog) SaveCatalog(ctx context.Context, entries []CatalogEntry) error {
	m.replace(entries)
	return nil
}

func (m *MemoryCatalog) replace(entries []CatalogEntry) {
	sorted := append([]CatalogEntry(nil), entries...)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].ID == sorted[b].ID {
			return sorted[a].Script < sorted[b].Script
		}
		return sorted[a].ID < sorted[b].ID
	})

	m.mu.Lock()
	m.entries = sorted
	m.mu.Unlock()
}

func (m *MemoryCatalog) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]CatalogEntry(nil), m.entries...), nil
}

func (m *MemoryCatalog) GetEntry(ctx context.Context, id, script string) (*CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id && e.Script == script {
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFound("sutra", id+"/"+script)
}
