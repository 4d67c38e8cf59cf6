package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/odvcencio/wedit/editor"
)

// textView draws the session's viewport lines.
type textView struct {
	// left is the first screen column shown; it follows the cursor.
	left int

	textStyle      tcell.Style
	selectionStyle tcell.Style
	fillerStyle    tcell.Style
}

func newTextView() *textView {
	return &textView{
		textStyle:      tcell.StyleDefault,
		selectionStyle: tcell.StyleDefault.Reverse(true),
		fillerStyle:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// scrollTo adjusts the horizontal offset so column x is visible.
func (v *textView) scrollTo(x, width int) {
	if width < 1 {
		return
	}
	if x < v.left {
		v.left = x
	}
	if x >= v.left+width {
		v.left = x - width + 1
	}
}

// Render draws height rows starting at the cursor's top line and returns the
// screen position of the cursor.
func (v *textView) Render(scr tcell.Screen, s *editor.Session, width, height int) (int, int) {
	cur := s.Cursor()
	sel := s.Selection()
	v.scrollTo(cur.Screen.X, width)

	for y := 0; y < height; y++ {
		fill(scr, 0, y, width, v.textStyle)
		n := cur.Top + y
		if n >= s.FileLen() {
			scr.SetContent(0, y, '~', nil, v.fillerStyle)
			continue
		}
		line, err := s.Line(n)
		if err != nil {
			continue
		}
		v.drawLine(scr, y, width, line, n, n < s.FileLen()-1, cur.Measure, &sel)
	}
	return cur.Screen.X - v.left, cur.Screen.Y
}

func (v *textView) drawLine(scr tcell.Screen, y, width int, line string, n int, terminated bool, m editor.Measurer, sel *editor.Selection) {
	col, off := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := m.ClusterWidth(cluster)
		style := v.textStyle
		if sel.Contains(editor.Pos{Col: off, Line: n}) {
			style = v.selectionStyle
		}
		off += len(cluster)

		switch {
		case w == 0:
		case cluster == "\t" || col < v.left || col+w > v.left+width:
			for i := range w {
				if x := col + i - v.left; x >= 0 && x < width {
					scr.SetContent(x, y, ' ', nil, style)
				}
			}
		default:
			runes := []rune(cluster)
			scr.SetContent(col-v.left, y, runes[0], runes[1:], style)
		}
		col += w
		if col >= v.left+width {
			return
		}
	}
	if terminated && sel.Contains(editor.Pos{Col: len(line), Line: n}) {
		if x := col - v.left; x >= 0 && x < width {
			scr.SetContent(x, y, ' ', nil, v.selectionStyle)
		}
	}
}

// fill paints width blank cells from x on row y.
func fill(scr tcell.Screen, x, y, width int, style tcell.Style) {
	for ; x < width; x++ {
		scr.SetContent(x, y, ' ', nil, style)
	}
}

// drawString writes s from column x, clipped at maxX, and returns the column
// after the last cell written.
func drawString(scr tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		runes := []rune(cluster)
		scr.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
