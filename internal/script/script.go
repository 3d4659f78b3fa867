// Package script converts sutra text between Traditional and Simplified
// Chinese with a fixed character table.
package script

import (
	"strings"

	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
)

var s2t = make(map[rune]rune, len(t2s))

func init() {
	for t, s := range t2s {
		if s2tSkip[s] {
			continue
		}
		s2t[s] = t
	}
	for s, t := range s2tPrefer {
		s2t[s] = t
	}
}

// Name identifies a script variant.
type Name string

const (
	Simplified  Name = "simplified"
	Traditional Name = "traditional"
)

// TraditionalSuffix marks the file name of a Traditional variant.
const TraditionalSuffix = "-tw"

// Simplify maps every Traditional character in s to its Simplified form.
func Simplify(s string) string {
	return mapRunes(s, t2s)
}

// Traditionalize maps every Simplified character in s back to Traditional.
func Traditionalize(s string) string {
	return mapRunes(s, s2t)
}

func mapRunes(s string, table map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if v, ok := table[r]; ok {
			return v
		}
		return r
	}, s)
}

// Converter returns the conversion function producing the given script.
func Converter(to Name) func(string) string {
	if to == Traditional {
		return Traditionalize
	}
	return Simplify
}

// FileName returns the file name of sutra id in the given script.
func FileName(id string, name Name) string {
	if name == Traditional {
		return id + TraditionalSuffix + ".json"
	}
	return id + ".json"
}

// FromFileName derives the sutra id and script from a file base name.
func FromFileName(base string) (string, Name) {
	id := strings.TrimSuffix(base, ".json")
	if strings.HasSuffix(id, TraditionalSuffix) {
		return strings.TrimSuffix(id, TraditionalSuffix), Traditional
	}
	return id, Simplified
}

// ConvertDocument returns a copy of doc with every displayed string passed
// through convert. The id and any keys the document does not model are kept.
func ConvertDocument(doc *sutra.Document, convert func(string) string) *sutra.Document {
	out := *doc
	out.Title = convert(doc.Title)
	out.Translator = convert(doc.Translator)
	out.OpeningVerse = convertAll(doc.OpeningVerse, convert)
	out.Dedication = convertAll(doc.Dedication, convert)
	out.Chapters = make([]sutra.Chapter, len(doc.Chapters))

	for i, ch := range doc.Chapters {
		paragraphs := make([]sutra.Paragraph, len(ch.Paragraphs))
		for j, p := range ch.Paragraphs {
			if p.IsText() {
				paragraphs[j] = sutra.Plain(convert(p.Text))
				continue
			}
			paragraphs[j] = sutra.Paragraph{Block: p.Block.WithContent(convert(p.Block.Title), convert(p.Block.Text))}
		}
		ch.Title = convert(ch.Title)
		ch.Paragraphs = paragraphs
		out.Chapters[i] = ch
	}
	return &out
}

func convertAll(lines []string, convert func(string) string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = convert(l)
	}
	return out
}
