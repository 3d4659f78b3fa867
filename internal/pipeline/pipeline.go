package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dizang-faith/dizang-faith-web/internal/crawler"
	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
	"github.com/dizang-faith/dizang-faith-web/internal/verse"
	"github.com/rivo/uniseg"
)

const (
	previewLines = 4
	previewWidth = 40
)

// Runner applies one formatting pass to sutra files, reporting progress to
// Out the way the offline tools always have.
type Runner struct {
	Dir    string
	Pass   verse.Pass
	Out    io.Writer
	Logger *slog.Logger

	crawler *crawler.Crawler
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path     string
	Modified bool
	Result   sutra.Result
}

// Summary is the outcome of a batch run.
type Summary struct {
	Files    []FileResult
	Modified int
}

// NewLines totals the lines added across every file.
func (s Summary) NewLines() int {
	n := 0
	for _, fr := range s.Files {
		n += fr.Result.NewLines()
	}
	return n
}

func NewRunner(dir string, pass verse.Pass, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		Dir:     dir,
		Pass:    pass,
		Out:     out,
		Logger:  logger,
		crawler: crawler.NewCrawler(),
	}
}

// Resolve maps a command-line argument to a file path in the runner's
// directory.
func (r *Runner) Resolve(arg string) string {
	return ResolvePath(r.Dir, arg)
}

// ResolvePath keeps absolute paths and takes anything else relative to dir.
func ResolvePath(dir, arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(dir, arg)
}

// CheckFile returns a NotFoundError when path does not exist.
func CheckFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &apperrors.NotFoundError{Resource: "file", ID: path, Err: err}
		}
		return &apperrors.IOError{Operation: "stat", Path: path, Err: err}
	}
	return nil
}

// ProcessFile formats one file in place. The file is only rewritten when a
// paragraph changed.
func (r *Runner) ProcessFile(path string) (FileResult, error) {
	fmt.Fprintf(r.Out, "Processing: %s\n", path)

	doc, err := sutra.LoadFile(path)
	if err != nil {
		return FileResult{Path: path}, err
	}

	updated, res := sutra.ProcessDocument(doc, r.Pass)
	for _, s := range res.Splits {
		fmt.Fprintf(r.Out, "  Chapter %d, Para %d: Split into %d lines\n", s.Chapter, s.Paragraph, len(s.Lines))
	}

	fr := FileResult{Path: path, Modified: res.Changed, Result: res}
	if !res.Changed {
		if r.Pass == verse.LinePass {
			fmt.Fprintf(r.Out, "  - No changes needed: %s\n", path)
		} else {
			fmt.Fprintf(r.Out, "  - No verses to split in: %s\n", path)
		}
		return fr, nil
	}

	if err := sutra.SaveFile(path, updated); err != nil {
		return fr, err
	}
	if r.Pass == verse.LinePass {
		fmt.Fprintf(r.Out, "  ✓ Updated: %s (%d new lines)\n", path, res.NewLines())
	} else {
		fmt.Fprintf(r.Out, "  ✓ Updated: %s\n", path)
	}
	r.Logger.Debug("file rewritten", "path", path, "pass", r.Pass.String(), "splits", len(res.Splits))
	return fr, nil
}

// ProcessAll formats every sutra file in Dir, one after another. A file that
// fails to load aborts the batch.
func (r *Runner) ProcessAll() (Summary, error) {
	files, err := r.crawler.ListFiles(r.Dir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list sutras in %s: %w", r.Dir, err)
	}
	return r.ProcessFiles(files)
}

// ProcessFiles formats the given files in order and prints the batch total.
func (r *Runner) ProcessFiles(files []string) (Summary, error) {
	var sum Summary
	for _, file := range files {
		fr, err := r.ProcessFile(file)
		if err != nil {
			return sum, err
		}
		sum.Files = append(sum.Files, fr)
		if fr.Modified {
			sum.Modified++
		}
	}

	fmt.Fprintf(r.Out, "\nDone! Modified %d file(s).\n", sum.Modified)
	return sum, nil
}

// DryRun prints what ProcessAll would change without writing anything.
func (r *Runner) DryRun() error {
	files, err := r.crawler.ListFiles(r.Dir)
	if err != nil {
		return fmt.Errorf("failed to list sutras in %s: %w", r.Dir, err)
	}

	for _, file := range files {
		doc, err := sutra.LoadFile(file)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.Out, "\n%s:\n", filepath.Base(file))
		_, res := sutra.ProcessDocument(doc, r.Pass)
		for _, s := range res.Splits {
			fmt.Fprintf(r.Out, "  Chapter %d, Para %d: Would split into %d lines\n", s.Chapter, s.Paragraph, len(s.Lines))
			for i, line := range s.Lines {
				if i == previewLines {
					break
				}
				fmt.Fprintf(r.Out, "    %d. %s...\n", i+1, Truncate(line, previewWidth))
			}
			if len(s.Lines) > previewLines {
				fmt.Fprintf(r.Out, "    ... and %d more\n", len(s.Lines)-previewLines)
			}
		}
	}
	return nil
}

// Truncate returns the first n grapheme clusters of s.
func Truncate(s string, n int) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String()
}
