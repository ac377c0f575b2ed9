package table

import "strings"

// Alignment specifies how a column's content is aligned.
type Alignment uint8

const (
	// AlignLeft aligns content to the left edge of the column.
	AlignLeft Alignment = iota

	// AlignCenter centers content in the column.
	AlignCenter

	// AlignRight aligns content to the right edge of the column.
	AlignRight
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// IsDelimiterLine reports whether line is a table delimiter row:
// only '|', '+', ':', '-', spaces, and tabs, with at least one dash.
func IsDelimiterLine(line string) bool {
	dashes := 0
	for _, r := range line {
		switch r {
		case '-':
			dashes++
		case '|', '+', ':', ' ', '\t':
		default:
			return false
		}
	}
	return dashes > 0
}

// InferAlignments scans the table's source lines for the first
// delimiter row and derives per-column alignments from its colon
// placement. A '+' in the match means a boxed table and splits on '+',
// otherwise the line splits on '|'. Outer empty fragments from leading
// and trailing pipes are discarded. Returns nil when no delimiter row
// is found; callers default to left alignment.
func InferAlignments(lines []string) []Alignment {
	for _, line := range lines {
		if !IsDelimiterLine(line) {
			continue
		}
		split := "|"
		if strings.ContainsRune(line, '+') {
			split = "+"
		}
		frags := strings.Split(line, split)
		if len(frags) > 0 && strings.TrimSpace(frags[0]) == "" {
			frags = frags[1:]
		}
		if len(frags) > 0 && strings.TrimSpace(frags[len(frags)-1]) == "" {
			frags = frags[:len(frags)-1]
		}
		aligns := make([]Alignment, 0, len(frags))
		for _, frag := range frags {
			aligns = append(aligns, fragmentAlignment(frag))
		}
		return aligns
	}
	return nil
}

// fragmentAlignment maps one delimiter fragment to an alignment:
// colons on both ends mean center, a trailing colon alone means right,
// anything else means left.
func fragmentAlignment(frag string) Alignment {
	frag = strings.TrimSpace(frag)
	leading := strings.HasPrefix(frag, ":")
	trailing := strings.HasSuffix(frag, ":") && len(frag) > 1
	switch {
	case leading && trailing:
		return AlignCenter
	case trailing:
		return AlignRight
	default:
		return AlignLeft
	}
}
