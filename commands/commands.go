// Package commands maps terminal key events to editor commands and runs
// them against an editing session.
package commands

import (
	"errors"
	"fmt"

	"github.com/odvcencio/wedit/editor"
)

// Command identifies one entry of the editor's command surface.
type Command int

const (
	None Command = iota
	InsertChar
	InsertTab
	Newline
	Backspace
	Delete

	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MoveWordLeft
	MoveWordRight
	MoveJumpUp
	MoveJumpDown
	MovePageUp
	MovePageDown

	SelectLeft
	SelectRight
	SelectUp
	SelectDown
	SelectHome
	SelectEnd
	SelectWordLeft
	SelectWordRight
	SelectJumpUp
	SelectJumpDown
	SelectPageUp
	SelectPageDown

	Undo
	Redo
	Copy
	Cut
	Paste
	Save
	Quit

	DeleteLine
	DuplicateLine
	MoveLineUp
	MoveLineDown
	MatchBracket
	Find
	FindNext
	FindPrev
	GotoLine

	numCommands
)

// ErrFrontEnd is returned by Run for commands that need front-end state,
// such as prompts or quitting.
var ErrFrontEnd = errors.New("command is handled by the front end")

// Info describes a command for listings such as a help screen.
type Info struct {
	ID       string
	Label    string
	Shortcut string
	Category string
}

var infos = [numCommands]Info{
	InsertChar:      {"edit.insert", "Insert Character", "", "Edit"},
	InsertTab:       {"edit.tab", "Insert Tab", "Tab", "Edit"},
	Newline:         {"edit.newline", "New Line", "Enter", "Edit"},
	Backspace:       {"edit.backspace", "Delete Backward", "Backspace", "Edit"},
	Delete:          {"edit.delete", "Delete Forward", "Delete", "Edit"},
	MoveLeft:        {"cursor.left", "Cursor Left", "Left", "Cursor"},
	MoveRight:       {"cursor.right", "Cursor Right", "Right", "Cursor"},
	MoveUp:          {"cursor.up", "Cursor Up", "Up", "Cursor"},
	MoveDown:        {"cursor.down", "Cursor Down", "Down", "Cursor"},
	MoveHome:        {"cursor.home", "Line Start", "Home", "Cursor"},
	MoveEnd:         {"cursor.end", "Line End", "End", "Cursor"},
	MoveWordLeft:    {"cursor.wordLeft", "Word Left", "Ctrl+Left", "Cursor"},
	MoveWordRight:   {"cursor.wordRight", "Word Right", "Ctrl+Right", "Cursor"},
	MoveJumpUp:      {"cursor.jumpUp", "Jump Up 10 Lines", "Ctrl+Up", "Cursor"},
	MoveJumpDown:    {"cursor.jumpDown", "Jump Down 10 Lines", "Ctrl+Down", "Cursor"},
	MovePageUp:      {"cursor.pageUp", "Page Up", "PgUp", "Cursor"},
	MovePageDown:    {"cursor.pageDown", "Page Down", "PgDn", "Cursor"},
	SelectLeft:      {"select.left", "Select Left", "Shift+Left", "Selection"},
	SelectRight:     {"select.right", "Select Right", "Shift+Right", "Selection"},
	SelectUp:        {"select.up", "Select Up", "Shift+Up", "Selection"},
	SelectDown:      {"select.down", "Select Down", "Shift+Down", "Selection"},
	SelectHome:      {"select.home", "Select To Line Start", "Shift+Home", "Selection"},
	SelectEnd:       {"select.end", "Select To Line End", "Shift+End", "Selection"},
	SelectWordLeft:  {"select.wordLeft", "Select Word Left", "Ctrl+Shift+Left", "Selection"},
	SelectWordRight: {"select.wordRight", "Select Word Right", "Ctrl+Shift+Right", "Selection"},
	SelectJumpUp:    {"select.jumpUp", "Select Up 10 Lines", "Ctrl+Shift+Up", "Selection"},
	SelectJumpDown:  {"select.jumpDown", "Select Down 10 Lines", "Ctrl+Shift+Down", "Selection"},
	SelectPageUp:    {"select.pageUp", "Select Page Up", "Shift+PgUp", "Selection"},
	SelectPageDown:  {"select.pageDown", "Select Page Down", "Shift+PgDn", "Selection"},
	Undo:            {"edit.undo", "Undo", "Ctrl+Z", "Edit"},
	Redo:            {"edit.redo", "Redo", "Ctrl+Y", "Edit"},
	Copy:            {"edit.copy", "Copy", "Ctrl+C", "Edit"},
	Cut:             {"edit.cut", "Cut", "Ctrl+X", "Edit"},
	Paste:           {"edit.paste", "Paste", "Ctrl+V", "Edit"},
	Save:            {"file.save", "Save File", "Ctrl+S", "File"},
	Quit:            {"app.quit", "Quit", "Ctrl+Q", "App"},
	DeleteLine:      {"line.delete", "Delete Line", "Ctrl+K", "Line"},
	DuplicateLine:   {"line.duplicate", "Duplicate Line", "Ctrl+D", "Line"},
	MoveLineUp:      {"line.moveUp", "Move Line Up", "Alt+Up", "Line"},
	MoveLineDown:    {"line.moveDown", "Move Line Down", "Alt+Down", "Line"},
	MatchBracket:    {"cursor.bracket", "Go to Matching Bracket", "Ctrl+]", "Cursor"},
	Find:            {"search.find", "Find", "Ctrl+F", "Search"},
	FindNext:        {"search.next", "Find Next", "F3", "Search"},
	FindPrev:        {"search.prev", "Find Previous", "Shift+F3", "Search"},
	GotoLine:        {"search.gotoLine", "Go to Line", "Ctrl+G", "Search"},
}

func (c Command) String() string {
	if c <= None || c >= numCommands {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return infos[c].ID
}

// Info returns the listing entry for c.
func (c Command) Info() Info {
	if c <= None || c >= numCommands {
		return Info{}
	}
	return infos[c]
}

// All returns every command in declaration order.
func All() []Info {
	out := make([]Info, 0, numCommands-1)
	for c := None + 1; c < numCommands; c++ {
		out = append(out, infos[c])
	}
	return out
}

// Motion returns the cursor motion behind a movement or selection command
// and whether it extends the selection.
func (c Command) Motion() (m editor.Motion, extend, ok bool) {
	switch {
	case c >= MoveLeft && c <= MovePageDown:
		return editor.MoveLeft + editor.Motion(c-MoveLeft), false, true
	case c >= SelectLeft && c <= SelectPageDown:
		return editor.MoveLeft + editor.Motion(c-SelectLeft), true, true
	}
	return 0, false, false
}

// Target is the editing surface commands run against. *editor.Session
// satisfies it.
type Target interface {
	InsertRune(r rune) error
	InsertTab() error
	Newline() error
	Backspace() error
	Delete() error
	Move(m editor.Motion, extend bool) error
	Undo() error
	Redo() error
	Copy() error
	Cut() error
	Paste() error
	Save() error
	DeleteLine() error
	DuplicateLine() error
	MoveLine(delta int) error
	MatchBracket() (bool, error)
}

// Run executes cmd against t. r is the typed rune for InsertChar.
func Run(t Target, cmd Command, r rune) error {
	if m, extend, ok := cmd.Motion(); ok {
		return t.Move(m, extend)
	}
	switch cmd {
	case InsertChar:
		return t.InsertRune(r)
	case InsertTab:
		return t.InsertTab()
	case Newline:
		return t.Newline()
	case Backspace:
		return t.Backspace()
	case Delete:
		return t.Delete()
	case Undo:
		return t.Undo()
	case Redo:
		return t.Redo()
	case Copy:
		return t.Copy()
	case Cut:
		return t.Cut()
	case Paste:
		return t.Paste()
	case Save:
		return t.Save()
	case DeleteLine:
		return t.DeleteLine()
	case DuplicateLine:
		return t.DuplicateLine()
	case MoveLineUp:
		return t.MoveLine(-1)
	case MoveLineDown:
		return t.MoveLine(1)
	case MatchBracket:
		_, err := t.MatchBracket()
		return err
	case Quit, Find, FindNext, FindPrev, GotoLine:
		return fmt.Errorf("%w: %s", ErrFrontEnd, cmd)
	}
	return fmt.Errorf("unknown command %v", cmd)
}
