package editor

import "errors"

const jumpLines = 10

// Cursor tracks the logical and screen position of the caret.
//
// The cursor line is always Top + Screen.Y; nothing else caches it.
// TextPos is a byte offset into that line on a grapheme boundary, Screen.X is
// the display width of the text before it, and Stored is the screen column
// vertical movement tries to return to.
type Cursor struct {
	TextPos int
	Screen  Point
	Stored  int
	Top     int

	FileLen       int
	Height, Width int

	Measure Measurer
}

// NewCursor returns a cursor at the start of the file for a viewport of the
// given size.
func NewCursor(fileLen, height, width int, m Measurer) Cursor {
	c := Cursor{FileLen: fileLen, Measure: m}
	c.Resize(height, width)
	return c
}

// Line returns the absolute line the cursor is on.
func (c Cursor) Line() int { return c.Top + c.Screen.Y }

// Pos returns the cursor's logical position.
func (c Cursor) Pos() Pos { return Pos{Col: c.TextPos, Line: c.Line()} }

// Resize sets the viewport size, scrolling so the cursor stays visible.
func (c *Cursor) Resize(height, width int) {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	c.Height, c.Width = height, width
	if c.Screen.Y >= height {
		c.Top += c.Screen.Y - height + 1
		c.Screen.Y = height - 1
	}
}

// line reads an absolute line, growing the window once when it is not
// loaded yet.
func (c *Cursor) line(w *Window, n int) (string, error) {
	s, err := w.Line(n)
	if errors.Is(err, ErrLineNotLoaded) {
		if err := w.Ensure(n, n+1); err != nil {
			return "", err
		}
		s, err = w.Line(n)
	}
	return s, err
}

// Current returns the text of the cursor line.
func (c *Cursor) Current(w *Window) (string, error) {
	return c.line(w, c.Line())
}

// Left moves one grapheme left, wrapping to the end of the previous line.
func (c *Cursor) Left(w *Window) error {
	if err := c.left(w); err != nil {
		return err
	}
	c.Stored = c.Screen.X
	return nil
}

// Right moves one grapheme right, wrapping to the start of the next line.
func (c *Cursor) Right(w *Window) error {
	if err := c.right(w); err != nil {
		return err
	}
	c.Stored = c.Screen.X
	return nil
}

// Up moves one line up, scrolling at the top of the viewport.
func (c *Cursor) Up(w *Window) error {
	target := c.Line() - 1
	if target < 0 {
		return nil
	}
	if _, err := c.line(w, target); err != nil {
		return err
	}
	if c.Screen.Y > 0 {
		c.Screen.Y--
	} else {
		c.Top--
	}
	return c.realign(w)
}

// Down moves one line down, scrolling at the bottom of the viewport.
func (c *Cursor) Down(w *Window) error {
	target := c.Line() + 1
	if target >= c.FileLen {
		return nil
	}
	if _, err := c.line(w, target); err != nil {
		return err
	}
	if c.Screen.Y < c.Height-1 {
		c.Screen.Y++
	} else {
		c.Top++
	}
	return c.realign(w)
}

// Home moves to column 0 and remembers it as the preferred column.
func (c *Cursor) Home(w *Window) error {
	c.home()
	c.Stored = 0
	return nil
}

// End moves past the last grapheme and remembers the preferred column.
func (c *Cursor) End(w *Window) error {
	if err := c.end(w); err != nil {
		return err
	}
	c.Stored = c.Screen.X
	return nil
}

// WordLeft moves to the nearest word boundary before the cursor.
func (c *Cursor) WordLeft(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	if c.TextPos == 0 {
		return c.Left(w)
	}
	target := 0
	bounds := WordBoundaries(s)
	for i := len(bounds) - 1; i >= 0; i-- {
		if bounds[i] < c.TextPos {
			target = bounds[i]
			break
		}
	}
	for c.TextPos > target {
		if err := c.Left(w); err != nil {
			return err
		}
	}
	return nil
}

// WordRight moves to the nearest word boundary after the cursor.
func (c *Cursor) WordRight(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	end := contentEnd(s)
	if c.TextPos >= end {
		return c.Right(w)
	}
	target := end
	for _, b := range WordBoundaries(s[:end]) {
		if b > c.TextPos {
			target = b
			break
		}
	}
	for c.TextPos < target {
		if err := c.Right(w); err != nil {
			return err
		}
	}
	return nil
}

// JumpUp moves up ten lines.
func (c *Cursor) JumpUp(w *Window) error { return c.repeat(w, jumpLines, c.Up) }

// JumpDown moves down ten lines.
func (c *Cursor) JumpDown(w *Window) error { return c.repeat(w, jumpLines, c.Down) }

// PageUp moves up one viewport.
func (c *Cursor) PageUp(w *Window) error { return c.repeat(w, c.pageLines(), c.Up) }

// PageDown moves down one viewport.
func (c *Cursor) PageDown(w *Window) error { return c.repeat(w, c.pageLines(), c.Down) }

// MoveTo places the cursor on a logical position, scrolling as little as
// possible to keep it inside the viewport.
func (c *Cursor) MoveTo(w *Window, p Pos) error {
	line := max(0, min(p.Line, c.FileLen-1))
	s, err := c.line(w, line)
	if err != nil {
		return err
	}
	switch {
	case line < c.Top:
		c.Top = line
	case line >= c.Top+c.Height:
		c.Top = line - c.Height + 1
	}
	c.Screen.Y = line - c.Top
	c.TextPos = SnapBoundary(s, min(p.Col, contentEnd(s)))
	c.Screen.X = c.Measure.Width(s[:c.TextPos])
	c.Stored = c.Screen.X
	return nil
}

// Sync recomputes the screen column after the cursor line changed under
// the cursor, keeping TextPos on a grapheme boundary.
func (c *Cursor) Sync(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	c.TextPos = SnapBoundary(s, min(c.TextPos, contentEnd(s)))
	c.Screen.X = c.Measure.Width(s[:c.TextPos])
	return nil
}

func (c *Cursor) pageLines() int {
	if c.FileLen < c.Height {
		return c.FileLen
	}
	return c.Height + 1
}

func (c *Cursor) repeat(w *Window, n int, step func(*Window) error) error {
	for range n {
		if err := step(w); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cursor) left(w *Window) error {
	if c.TextPos == 0 {
		if c.Line() == 0 {
			return nil
		}
		if err := c.Up(w); err != nil {
			return err
		}
		return c.end(w)
	}
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	c.TextPos = PrevBoundary(s, c.TextPos)
	c.Screen.X = c.Measure.Width(s[:c.TextPos])
	return nil
}

func (c *Cursor) right(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	if c.TextPos >= contentEnd(s) {
		if c.Line() >= c.FileLen-1 {
			return nil
		}
		if err := c.Down(w); err != nil {
			return err
		}
		c.home()
		return nil
	}
	c.TextPos = NextBoundary(s, c.TextPos)
	c.Screen.X = c.Measure.Width(s[:c.TextPos])
	return nil
}

func (c *Cursor) home() {
	c.TextPos = 0
	c.Screen.X = 0
}

func (c *Cursor) end(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	c.TextPos = contentEnd(s)
	c.Screen.X = c.Measure.Width(s[:c.TextPos])
	return nil
}

// realign walks right from column 0 until the stored column is reached or
// exceeded, stopping early on shorter lines.
func (c *Cursor) realign(w *Window) error {
	s, err := c.Current(w)
	if err != nil {
		return err
	}
	c.home()
	for c.Screen.X < c.Stored && c.TextPos < contentEnd(s) {
		next := NextBoundary(s, c.TextPos)
		c.Screen.X += c.Measure.ClusterWidth(s[c.TextPos:next])
		c.TextPos = next
	}
	return nil
}
