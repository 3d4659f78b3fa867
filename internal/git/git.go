// Package git finds sutra files touched since a git revision.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ChangedSutras runs git diff in dir and returns the sutra files added,
// modified or renamed since baseRef, as paths under dir.
func ChangedSutras(ctx context.Context, dir, baseRef string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", "--diff-filter=AMR", "--relative", baseRef, "--", ".")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseNameOnly(dir, output), nil
}

func parseNameOnly(dir string, output []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	seen := make(map[string]bool)
	var paths []string

	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		// Only top-level documents; the formatter never descends.
		if name == "" || !strings.HasSuffix(name, ".json") || strings.Contains(name, "/") {
			continue
		}
		path := filepath.Join(dir, name)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)
	return paths
}
