package tail

import (
	"strings"
	"unicode/utf8"
)

// labelAlign is the column alignment of pod labels.
const labelAlign = 4

// LabelWidth returns the label column width for names:
// the longest name plus one, rounded up to a multiple of
// four. The extra column guarantees at least one space
// between the label and the log line.
func LabelWidth(names []string) int {
	maxLen := 0

	for _, n := range names {
		if l := utf8.RuneCountInString(n); l > maxLen {
			maxLen = l
		}
	}

	return (maxLen + labelAlign) / labelAlign * labelAlign
}

// PadLabel right-pads name with spaces to width. Names
// already at or beyond width are returned unchanged.
func PadLabel(name string, width int) string {
	n := utf8.RuneCountInString(name)
	if n >= width {
		return name
	}

	return name + strings.Repeat(" ", width-n)
}
