package commands

import (
	"strings"

	"golang.org/x/text/width"
)

// displayWidth returns the number of terminal columns s occupies.
// Wide and fullwidth runes (CJK names) take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// padRight pads s with spaces to cols terminal columns
func padRight(s string, cols int) string {
	if pad := cols - displayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
