package crawler

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Crawler scans a directory for sutra JSON files.
type Crawler struct {
	ignored   []string
	recursive bool
}

// NewCrawler creates a crawler that only looks at the top level of a
// directory, the way the sutras directory is laid out.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{".git", "node_modules", "testdata"},
	}
}

// Recursive makes the crawler descend into subdirectories.
func (c *Crawler) Recursive() *Crawler {
	c.recursive = true
	return c
}

// ScanDir walks root and calls onFile for every *.json file in lexical order.
// An error returned by onFile stops the scan.
func (c *Crawler) ScanDir(root string, onFile func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !c.recursive {
				return filepath.SkipDir
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		return onFile(path)
	})
}

// ListFiles returns every sutra file under root, sorted.
func (c *Crawler) ListFiles(root string) ([]string, error) {
	var files []string
	err := c.ScanDir(root, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
