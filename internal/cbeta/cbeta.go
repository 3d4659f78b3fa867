// Package cbeta imports CBETA plain-text sutra sources into sutra documents.
package cbeta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dizang-faith/dizang-faith-web/internal/script"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
	"golang.org/x/text/unicode/norm"
)

// DefaultTitle is the title line of the source the importer was written for.
const DefaultTitle = "大乘離文字普光明藏經"

// OpeningVerse is recited before every sutra.
var OpeningVerse = []string{
	"无上甚深微妙法",
	"百千万劫难遭遇",
	"我今见闻得受持",
	"愿解如来真实义",
}

// Dedication closes every sutra.
var Dedication = []string{
	"愿以此功德",
	"庄严佛净土",
	"上报四重恩",
	"下济三途苦",
	"若有见闻者",
	"悉发菩提心",
	"尽此一报身",
	"同生极乐国",
}

// Options controls which lines Parse treats as front matter and how body
// lines are cleaned.
type Options struct {
	// SourceTitle is the Traditional title line repeated in the source.
	SourceTitle string
	// NFC normalizes each line to Unicode NFC. This folds CJK compatibility
	// ideographs into their unified forms, so it is off by default.
	NFC bool
}

// Meta describes the document Build produces.
type Meta struct {
	ID         string
	Title      string
	Translator string
}

// Parse reads a CBETA text and returns its body paragraphs, one per
// non-empty line.
func Parse(r io.Reader, opts Options) ([]string, error) {
	title := opts.SourceTitle
	if title == "" {
		title = DefaultTitle
	}

	var paragraphs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "No.") {
			continue
		}

		if opts.NFC {
			line = norm.NFC.String(line)
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case trimmed == title:
			continue
		case isTranslatorLine(trimmed):
			continue
		}
		paragraphs = append(paragraphs, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return paragraphs, nil
}

func isTranslatorLine(s string) bool {
	return strings.Contains(s, "天竺三藏") && strings.Contains(s, "譯")
}

// Build assembles a one-chapter document from parsed paragraphs, converting
// them to Simplified script.
func Build(paragraphs []string, meta Meta) *sutra.Document {
	body := make([]sutra.Paragraph, len(paragraphs))
	for i, p := range paragraphs {
		body[i] = sutra.Plain(script.Simplify(p))
	}

	return &sutra.Document{
		ID:           meta.ID,
		Title:        meta.Title,
		Translator:   meta.Translator,
		OpeningVerse: append([]string(nil), OpeningVerse...),
		Chapters: []sutra.Chapter{{
			Title:      meta.Title,
			Paragraphs: body,
		}},
		Dedication: append([]string(nil), Dedication...),
	}
}
