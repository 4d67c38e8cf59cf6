package editor

import "strings"

// ReplaceLine overwrites the text of an absolute line.
func (w *Window) ReplaceLine(line int, text string) error {
	c, li, err := w.resolve(line)
	if err != nil {
		return err
	}
	c.Lines[li] = text
	w.touch(c)
	return nil
}

// DeleteLine removes the cursor line. The only line of a file is emptied
// instead.
func (s *Session) DeleteLine() error {
	s.sel.Clear()
	n := s.cur.Line()
	if err := s.win.Ensure(n-1, n+2); err != nil {
		return err
	}
	cur, err := s.win.Line(n)
	if err != nil {
		return err
	}
	s.record(true)
	switch {
	case s.cur.FileLen == 1:
		err = s.win.ReplaceLine(n, "")
	case n < s.cur.FileLen-1:
		err = s.win.DeleteRange(Pos{Line: n}, Pos{Line: n + 1})
		s.cur.FileLen--
	default:
		var prev string
		if prev, err = s.win.Line(n - 1); err == nil {
			err = s.win.DeleteRange(Pos{Col: contentEnd(prev), Line: n - 1}, Pos{Col: contentEnd(cur), Line: n})
			s.cur.FileLen--
		}
	}
	if err != nil {
		return err
	}
	if err := s.cur.MoveTo(s.win, Pos{Line: n}); err != nil {
		return err
	}
	return s.settle()
}

// DuplicateLine inserts a copy of the cursor line below it and moves the
// cursor onto the copy.
func (s *Session) DuplicateLine() error {
	s.sel.Clear()
	n := s.cur.Line()
	text, err := s.cur.Current(s.win)
	if err != nil {
		return err
	}
	s.record(true)
	var cr string
	if !strings.HasSuffix(text, "\r") {
		cr = s.lineBreak(text)
	}
	if err := s.win.InsertLines(n, len(text), []string{cr, text}); err != nil {
		return err
	}
	s.cur.FileLen++
	if err := s.cur.Down(s.win); err != nil {
		return err
	}
	return s.settle()
}

// MoveLine swaps the cursor line with its neighbor (delta -1 = up,
// +1 = down). The cursor follows the line.
func (s *Session) MoveLine(delta int) error {
	n := s.cur.Line()
	target := n + delta
	if delta == 0 || target < 0 || target >= s.cur.FileLen {
		return nil
	}
	s.sel.Clear()
	if err := s.win.Ensure(min(n, target), max(n, target)+1); err != nil {
		return err
	}
	a, err := s.win.Line(n)
	if err != nil {
		return err
	}
	b, err := s.win.Line(target)
	if err != nil {
		return err
	}
	s.record(true)
	// Each slot keeps its own line ending.
	if err := s.win.ReplaceLine(n, b[:contentEnd(b)]+a[contentEnd(a):]); err != nil {
		return err
	}
	if err := s.win.ReplaceLine(target, a[:contentEnd(a)]+b[contentEnd(b):]); err != nil {
		return err
	}
	if err := s.cur.MoveTo(s.win, Pos{Col: s.cur.TextPos, Line: target}); err != nil {
		return err
	}
	return s.settle()
}
