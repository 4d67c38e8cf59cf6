package editor

import "strings"

// DetectIndentStyle looks at lines to determine whether tabs or spaces are
// used for indentation. Returns the indent unit string (e.g., "\t" or "    ").
// Defaults to "\t" if no indentation found.
func DetectIndentStyle(lines []string) string {
	tabCount := 0
	spaceCount := 0
	minSpaceWidth := 0

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '\t':
			tabCount++
		case ' ':
			spaceCount++
			w := 0
			for w < len(line) && line[w] == ' ' {
				w++
			}
			// A line of only spaces says nothing about the indent unit.
			if w == len(line) {
				spaceCount--
				continue
			}
			if minSpaceWidth == 0 || w < minSpaceWidth {
				minSpaceWidth = w
			}
		}
	}

	if spaceCount > tabCount && minSpaceWidth > 0 {
		return strings.Repeat(" ", minSpaceWidth)
	}
	return "\t"
}

