package verse

import "fmt"

// Pass selects one of the two formatting passes run by the offline tools.
type Pass int

const (
	// SeparatorPass splits paragraphs joined with the full-width double space.
	SeparatorPass Pass = iota
	// LinePass splits short verse lines holding several phrases.
	LinePass
)

func (p Pass) String() string {
	switch p {
	case SeparatorPass:
		return "format-verses"
	case LinePass:
		return "split-lines"
	default:
		return fmt.Sprintf("pass(%d)", int(p))
	}
}

// Candidate reports whether the pass applies to text.
func (p Pass) Candidate(text string) bool {
	if p == LinePass {
		return IsVerseLine(text)
	}
	return HasSeparator(text)
}

// Split runs the pass over text.
func (p Pass) Split(text string) []string {
	if p == LinePass {
		return SplitVerseLine(text)
	}
	return SplitSeparated(text)
}

// ParsePass resolves a pass by the name String returns.
func ParsePass(name string) (Pass, error) {
	switch name {
	case "format-verses":
		return SeparatorPass, nil
	case "split-lines":
		return LinePass, nil
	}
	return 0, fmt.Errorf("unknown pass %q", name)
}
