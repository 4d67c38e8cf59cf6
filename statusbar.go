package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wedit/editor"
)

// statusBar renders the bottom line: file details on the left and a
// transient message on the right.
type statusBar struct {
	message string

	normalStyle  tcell.Style
	messageStyle tcell.Style
}

func newStatusBar() *statusBar {
	return &statusBar{
		normalStyle:  tcell.StyleDefault.Reverse(true),
		messageStyle: tcell.StyleDefault.Reverse(true).Foreground(tcell.ColorYellow),
	}
}

// SetMessage replaces the transient message. An empty string clears it.
func (b *statusBar) SetMessage(format string, args ...any) {
	b.message = fmt.Sprintf(format, args...)
}

// describe builds the left-hand status text for s.
func describe(s *editor.Session) string {
	dirty := ""
	if s.Dirty() {
		dirty = " [modified]"
	}
	cur := s.Cursor()
	col := cur.TextPos
	if line, err := s.Line(cur.Line()); err == nil {
		col = editor.GraphemeCount(line[:min(cur.TextPos, len(line))])
	}
	status := fmt.Sprintf(
		" %s%s  Ln %d/%d, Col %d  UTF-8  %s  %s",
		s.Title(),
		dirty,
		cur.Line()+1,
		s.FileLen(),
		col+1,
		s.LineEnding(),
		s.IndentStyle(),
	)
	if sel := s.Selection(); !sel.Empty {
		status += fmt.Sprintf("  Sel %s-%s", sel.Start, sel.End)
	}
	return status
}

func (b *statusBar) Render(scr tcell.Screen, y, width int, s *editor.Session) {
	fill(scr, 0, y, width, b.normalStyle)
	left := describe(s)
	if b.message == "" {
		drawString(scr, 0, y, width, runewidth.Truncate(left, width, "…"), b.normalStyle)
		return
	}
	msg := runewidth.Truncate(b.message+" ", width, "…")
	msgX := width - runewidth.StringWidth(msg)
	drawString(scr, 0, y, msgX, runewidth.Truncate(left, max(msgX-1, 0), "…"), b.normalStyle)
	drawString(scr, msgX, y, width, msg, b.messageStyle)
}
