package main

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// prompt is a one-line input shown in place of the status line, used for
// find and go-to-line.
type prompt struct {
	label string
	query string
	hint  string

	// accept filters typed runes; nil accepts everything printable.
	accept   func(r rune) bool
	onSubmit func(query string)
	onClose  func()

	labelStyle tcell.Style
	inputStyle tcell.Style
	hintStyle  tcell.Style
}

func newPrompt(label, initial, hint string) *prompt {
	return &prompt{
		label:      label,
		query:      initial,
		hint:       hint,
		labelStyle: tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x88, 0x88, 0x88)),
		inputStyle: tcell.StyleDefault,
		hintStyle:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

func newGotoLinePrompt() *prompt {
	p := newPrompt("Go to line: ", "", "Enter line number")
	p.accept = func(r rune) bool { return r >= '0' && r <= '9' }
	return p
}

func newFindPrompt(last string) *prompt {
	return newPrompt("Find: ", last, "Enter to search, Esc to cancel")
}

// Render draws the prompt on row y and returns the cursor column.
func (p *prompt) Render(s tcell.Screen, y, width int) int {
	fill(s, 0, y, width, p.inputStyle)
	x := drawString(s, 0, y, width, p.label, p.labelStyle)

	maxValue := width - x - 1
	if maxValue < 1 {
		maxValue = 1
	}
	text := p.query
	for runewidth.StringWidth(text) > maxValue {
		_, size := utf8.DecodeRuneInString(text)
		text = text[size:]
	}
	cursorX := drawString(s, x, y, width, text, p.inputStyle)

	if p.query == "" && p.hint != "" {
		msg := runewidth.Truncate(p.hint, width-cursorX-1, "")
		if msg != "" {
			drawString(s, width-runewidth.StringWidth(msg), y, width, msg, p.hintStyle)
		}
	}
	return cursorX
}

// HandleKey applies a key to the prompt and reports whether it closed.
func (p *prompt) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		if p.onClose != nil {
			p.onClose()
		}
		return true
	case tcell.KeyEnter:
		if p.onSubmit != nil {
			p.onSubmit(p.query)
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.query) > 0 {
			_, size := utf8.DecodeLastRuneInString(p.query)
			p.query = p.query[:len(p.query)-size]
		}
	case tcell.KeyCtrlU:
		p.query = ""
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		r := ev.Rune()
		if p.accept == nil || p.accept(r) {
			p.query += string(r)
		}
	}
	return false
}
