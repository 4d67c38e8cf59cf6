package editor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// searchEvictEvery is how many lines Find pages through between evictions.
const searchEvictEvery = 256

// Title returns the base filename, or "untitled" if the session has no path.
func (s *Session) Title() string {
	if s.path == "" {
		return "untitled"
	}
	return filepath.Base(s.path)
}

// GotoLine moves the cursor to the start of a 1-based line number, clamping
// past the end of the file.
func (s *Session) GotoLine(line int) error {
	if line <= 0 {
		return fmt.Errorf("invalid line number %d", line)
	}
	line = min(line, s.cur.FileLen)
	s.sel.Clear()
	if err := s.cur.MoveTo(s.win, Pos{Line: line - 1}); err != nil {
		return err
	}
	return s.settle()
}

// Find selects the next occurrence of query after the cursor, or with
// forward false the previous one before it, wrapping around the file once.
// Matches never span lines. It reports whether a match was found.
func (s *Session) Find(query string, forward bool) (bool, error) {
	if query == "" || strings.ContainsRune(query, '\n') {
		return false, nil
	}
	from := s.cur.Pos()
	if !s.sel.Empty {
		from = s.sel.End
		if !forward {
			from = s.sel.Start
		}
	}
	total := s.cur.FileLen
	for i := 0; i <= total; i++ {
		n := from.Line + i
		if !forward {
			n = from.Line - i
		}
		n = ((n % total) + total) % total

		text, err := s.cur.line(s.win, n)
		if err != nil {
			return false, err
		}
		col := matchInLine(text, query, from.Col, forward, i == 0, i == total)
		if col >= 0 {
			start := Pos{Col: SnapBoundary(text, col), Line: n}
			end := Pos{Col: col + len(query), Line: n}
			if snapped := SnapBoundary(text, end.Col); snapped < end.Col {
				end.Col = NextBoundary(text, snapped)
			}
			return true, s.selectMatch(start, end, forward)
		}
		if i > 0 && i%searchEvictEvery == 0 {
			s.win.Evict(n, n+1)
		}
	}
	return false, s.settle()
}

// matchInLine finds query in text. On the first line only matches beyond col
// (forward) or ending at or before it (backward) count; on the wrapped-around
// last visit only the remaining part of that line is searched.
func matchInLine(text, query string, col int, forward, first, wrapped bool) int {
	col = min(col, len(text))
	switch {
	case forward && first:
		if idx := strings.Index(text[col:], query); idx >= 0 {
			return col + idx
		}
	case forward && wrapped:
		if idx := strings.Index(text, query); idx >= 0 && idx < col {
			return idx
		}
	case forward:
		return strings.Index(text, query)
	case first:
		return strings.LastIndex(text[:col], query)
	case wrapped:
		if idx := strings.LastIndex(text[col:], query); idx >= 0 {
			return col + idx
		}
	default:
		return strings.LastIndex(text, query)
	}
	return -1
}

// selectMatch selects [start, end) with the cursor on the side the search
// was heading.
func (s *Session) selectMatch(start, end Pos, forward bool) error {
	anchor, head := start, end
	if !forward {
		anchor, head = end, start
	}
	s.sel.Clear()
	if err := s.cur.MoveTo(s.win, anchor); err != nil {
		return err
	}
	s.sel.Begin(s.cur.Screen, anchor, s.cur.Top)
	if err := s.cur.MoveTo(s.win, head); err != nil {
		return err
	}
	s.sel.Extend(anchor, head, forward)
	return s.settle()
}
