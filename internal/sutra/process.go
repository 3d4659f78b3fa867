package sutra

import "github.com/dizang-faith/dizang-faith-web/internal/verse"

// Split records one paragraph replaced by a formatting pass. Chapter and
// Paragraph are 1-based positions in the input document.
type Split struct {
	Chapter   int
	Paragraph int
	Lines     []string
}

// Result summarizes a formatting pass over a document.
type Result struct {
	Changed bool
	Splits  []Split
}

// NewLines returns how many paragraphs the pass added.
func (r Result) NewLines() int {
	n := 0
	for _, s := range r.Splits {
		n += len(s.Lines) - 1
	}
	return n
}

// ProcessDocument runs pass over every string paragraph of doc and returns
// a new document with split paragraphs spliced in place. doc is not
// modified. Structured paragraphs are copied unchanged.
//
// The separator pass replaces every candidate paragraph; the line pass only
// replaces a candidate when it yields more than one line.
func ProcessDocument(doc *Document, pass verse.Pass) (*Document, Result) {
	out := *doc
	out.Chapters = make([]Chapter, len(doc.Chapters))

	var res Result
	for ci, ch := range doc.Chapters {
		paragraphs := make([]Paragraph, 0, len(ch.Paragraphs))
		for pi, para := range ch.Paragraphs {
			if !para.IsText() || !pass.Candidate(para.Text) {
				paragraphs = append(paragraphs, para)
				continue
			}

			lines := pass.Split(para.Text)
			if pass == verse.LinePass && len(lines) <= 1 {
				paragraphs = append(paragraphs, para)
				continue
			}

			for _, line := range lines {
				paragraphs = append(paragraphs, Plain(line))
			}
			res.Changed = true
			res.Splits = append(res.Splits, Split{Chapter: ci + 1, Paragraph: pi + 1, Lines: lines})
		}
		ch.Paragraphs = paragraphs
		out.Chapters[ci] = ch
	}

	return &out, res
}
