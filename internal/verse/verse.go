package verse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator is the two full-width spaces authors use to join two verse lines.
const Separator = "　　"

const (
	openQuote  = "「"
	closeQuote = "」"

	minVerseLen   = 10
	maxVerseLen   = 60
	minPunctCount = 2
	minHanRatio   = 0.8
)

var (
	// Pass 1 only breaks on commas and full stops.
	separatedPhrase = regexp.MustCompile(`[^，。]+[，。]`)
	// Pass 2 also treats question and exclamation marks as clause ends.
	versePhrase = regexp.MustCompile(`[^，。？！]+[，。？！]`)
	clauseMark  = regexp.MustCompile(`[，。？！]`)
)

// HasSeparator reports whether text should go through the separator pass.
func HasSeparator(text string) bool {
	return strings.Contains(text, Separator)
}

// IsVerseLine reports whether text looks like a run of short verse phrases:
// between 10 and 60 characters, at least two clause-terminal marks, and
// mostly Han characters.
func IsVerseLine(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < minVerseLen || n > maxVerseLen {
		return false
	}
	if !strings.ContainsAny(text, "，。？！") {
		return false
	}
	if len(clauseMark.FindAllStringIndex(text, -1)) < minPunctCount {
		return false
	}
	return HanRatio(text) > minHanRatio
}

// HanRatio returns the fraction of runes in the CJK Unified Ideographs block.
func HanRatio(text string) float64 {
	total, han := 0, 0
	for _, r := range text {
		total++
		if isHan(r) {
			han++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(han) / float64(total)
}

func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// SplitSeparated breaks a paragraph on the full-width double space, then
// breaks each piece into comma/period phrases when it holds more than one.
// A trailing fragment without punctuation is dropped from a multi-phrase
// piece.
func SplitSeparated(text string) []string {
	prefix, content, suffix := stripQuotes(text)

	var lines []string
	for _, rough := range strings.Split(content, Separator) {
		rough = trim(rough)
		if rough == "" {
			continue
		}
		phrases := separatedPhrase.FindAllString(rough, -1)
		if len(phrases) > 1 {
			lines = appendTrimmed(lines, phrases)
			continue
		}
		lines = append(lines, rough)
	}

	return attachQuotes(lines, prefix, suffix)
}

// SplitVerseLine breaks a verse line into clause-terminated phrases. A line
// with fewer than two phrases is returned as is.
func SplitVerseLine(text string) []string {
	if trim(text) == "" {
		return nil
	}

	prefix, content, suffix := stripQuotes(text)

	phrases := versePhrase.FindAllString(content, -1)
	if len(phrases) <= 1 {
		return []string{text}
	}

	return attachQuotes(appendTrimmed(nil, phrases), prefix, suffix)
}

func stripQuotes(text string) (prefix, content, suffix string) {
	content = text
	if strings.HasPrefix(content, openQuote) {
		prefix = openQuote
		content = strings.TrimPrefix(content, openQuote)
	}
	if strings.HasSuffix(content, closeQuote) {
		suffix = closeQuote
		content = strings.TrimSuffix(content, closeQuote)
	}
	return prefix, content, suffix
}

func appendTrimmed(dst, phrases []string) []string {
	for _, p := range phrases {
		if p = trim(p); p != "" {
			dst = append(dst, p)
		}
	}
	return dst
}

// trim strips white space and byte order marks. U+0085 is not treated as
// space so a stray NEL stays part of the text.
func trim(s string) string {
	return strings.TrimFunc(s, isTrimmable)
}

func isTrimmable(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func attachQuotes(lines []string, prefix, suffix string) []string {
	if len(lines) == 0 {
		return nil
	}
	lines[0] = prefix + lines[0]
	lines[len(lines)-1] += suffix
	return lines
}
