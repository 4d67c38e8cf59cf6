package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the number of screen columns a tab occupies.
const DefaultTabWidth = 4

// Measurer converts line text to screen columns. A tab is one grapheme but
// always TabWidth columns; every other cluster uses East Asian width rules.
type Measurer struct {
	TabWidth int
	cond     *runewidth.Condition
}

// NewMeasurer returns a Measurer. eastAsian selects the wide interpretation
// of ambiguous-width characters.
func NewMeasurer(tabWidth int, eastAsian bool) Measurer {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return Measurer{TabWidth: tabWidth, cond: cond}
}

// ClusterWidth returns the screen width of a single grapheme cluster.
func (m Measurer) ClusterWidth(cluster string) int {
	if cluster == "\t" {
		return m.TabWidth
	}
	if m.cond == nil {
		return runewidth.StringWidth(cluster)
	}
	return m.cond.StringWidth(cluster)
}

// Width returns the screen width of s.
func (m Measurer) Width(s string) int {
	w := 0
	state := -1
	var cluster string
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += m.ClusterWidth(cluster)
	}
	return w
}

// NextBoundary returns the byte offset of the grapheme boundary after off,
// or len(s) when off is at or past the end.
func NextBoundary(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[off:], -1)
	return off + len(cluster)
}

// PrevBoundary returns the byte offset of the grapheme boundary before off,
// or 0 when off is at the start.
func PrevBoundary(s string, off int) int {
	if off > len(s) {
		off = len(s)
	}
	prev := 0
	pos := 0
	state := -1
	rest := s
	var cluster string
	for len(rest) > 0 && pos < off {
		prev = pos
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return prev
}

// GraphemeCount returns the number of user-perceived characters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// contentEnd returns the furthest offset the cursor may reach in line: the
// end, or just before the carriage return of a CRLF line.
func contentEnd(line string) int {
	return len(strings.TrimSuffix(line, "\r"))
}

// SnapBoundary returns the largest grapheme boundary at or before off.
func SnapBoundary(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	if off <= 0 {
		return 0
	}
	pos := 0
	state := -1
	rest := s
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+len(cluster) > off {
			return pos
		}
		pos += len(cluster)
	}
	return pos
}

// WordBoundaries returns the sorted byte offsets where words start and end
// in line. Punctuation and whitespace segments contribute no boundaries.
func WordBoundaries(line string) []int {
	var out []int
	pos := 0
	tokens := words.FromString(line)
	for tokens.Next() {
		tok := tokens.Value()
		start, end := pos, pos+len(tok)
		pos = end
		if !isWordToken(tok) {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != start {
			out = append(out, start)
		}
		out = append(out, end)
	}
	return out
}

func isWordToken(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.So, r)
}
