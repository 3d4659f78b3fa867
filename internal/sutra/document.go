package sutra

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is one sutra file as served to the reader. A decoded document
// keeps its key order and any keys it does not model; an absent opening
// verse or dedication stays absent while an empty one stays empty.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Translator   string    `json:"translator"`
	OpeningVerse []string  `json:"openingVerse"`
	Chapters     []Chapter `json:"chapters"`
	Dedication   []string  `json:"dedication"`

	layout layout
}

type Chapter struct {
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`

	layout layout
}

var (
	documentKeys = []string{"id", "title", "translator", "openingVerse", "chapters", "dedication"}
	chapterKeys  = []string{"title", "paragraphs"}
)

func (d Document) MarshalJSON() ([]byte, error) {
	return d.layout.encode([]member{
		{key: "id", value: d.ID},
		{key: "title", value: d.Title},
		{key: "translator", value: d.Translator},
		{key: "openingVerse", value: d.OpeningVerse, omit: d.OpeningVerse == nil},
		{key: "chapters", value: d.Chapters},
		{key: "dedication", value: d.Dedication, omit: d.Dedication == nil},
	})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	// documentFields has Document's fields without its methods
	type documentFields Document
	var f documentFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	l, err := decodeLayout(data, documentKeys...)
	if err != nil {
		return err
	}
	*d = Document(f)
	d.layout = l
	return nil
}

func (c Chapter) MarshalJSON() ([]byte, error) {
	return c.layout.encode([]member{
		{key: "title", value: c.Title},
		{key: "paragraphs", value: c.Paragraphs},
	})
}

func (c *Chapter) UnmarshalJSON(data []byte) error {
	type chapterFields Chapter
	var f chapterFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	l, err := decodeLayout(data, chapterKeys...)
	if err != nil {
		return err
	}
	*c = Chapter(f)
	c.layout = l
	return nil
}

// Paragraph is either plain text or a structured block such as a mantra.
// Exactly one of Text and Block is meaningful: Block != nil marks a
// structured paragraph.
type Paragraph struct {
	Text  string
	Block *Block
}

// Block is a structured paragraph. Blocks decoded from a file keep their
// original JSON so a rewrite reproduces them key for key.
type Block struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`

	raw json.RawMessage
}

const TypeMantra = "mantra"

// Plain returns a text paragraph.
func Plain(text string) Paragraph {
	return Paragraph{Text: text}
}

// IsText reports whether p is a plain string paragraph.
func (p Paragraph) IsText() bool {
	return p.Block == nil
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	if p.Block == nil {
		return marshalUnescaped(p.Text)
	}
	return p.Block.MarshalJSON()
}

// marshalUnescaped is json.Marshal without HTML escaping, which an outer
// encoder cannot undo once a Marshaler has applied it.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (p *Paragraph) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty paragraph")
	}
	switch data[0] {
	case '"':
		p.Block = nil
		return json.Unmarshal(data, &p.Text)
	case '{':
		var b Block
		if err := b.UnmarshalJSON(data); err != nil {
			return err
		}
		p.Text = ""
		p.Block = &b
		return nil
	default:
		return fmt.Errorf("paragraph must be a string or an object, got %s", data)
	}
}

// blockFields avoids recursing into Block's own methods.
type blockFields struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.raw != nil {
		return b.raw, nil
	}
	return marshalUnescaped(blockFields{Type: b.Type, Title: b.Title, Text: b.Text})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var f blockFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	b.Type, b.Title, b.Text = f.Type, f.Title, f.Text
	b.raw = append(json.RawMessage(nil), data...)
	return nil
}

// WithContent returns a copy of b carrying new title and text. The copy no
// longer reproduces the original JSON.
func (b *Block) WithContent(title, text string) *Block {
	return &Block{Type: b.Type, Title: title, Text: text}
}

// ParagraphCount returns the number of paragraphs across all chapters.
func (d *Document) ParagraphCount() int {
	n := 0
	for _, ch := range d.Chapters {
		n += len(ch.Paragraphs)
	}
	return n
}

// Decode parses a sutra document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode renders doc with two-space indentation, unescaped HTML characters
// and no trailing newline.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
