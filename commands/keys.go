package commands

import "github.com/gdamore/tcell/v2"

type binding struct {
	key tcell.Key
	mod tcell.ModMask
}

const (
	none      = tcell.ModNone
	shift     = tcell.ModShift
	ctrl      = tcell.ModCtrl
	alt       = tcell.ModAlt
	ctrlShift = tcell.ModCtrl | tcell.ModShift
)

var bindings = map[binding]Command{
	{tcell.KeyEnter, none}:     Newline,
	{tcell.KeyTab, none}:       InsertTab,
	{tcell.KeyBackspace, none}: Backspace,
	{tcell.KeyDelete, none}:    Delete,

	{tcell.KeyLeft, none}:      MoveLeft,
	{tcell.KeyLeft, shift}:     SelectLeft,
	{tcell.KeyLeft, ctrl}:      MoveWordLeft,
	{tcell.KeyLeft, ctrlShift}: SelectWordLeft,

	{tcell.KeyRight, none}:      MoveRight,
	{tcell.KeyRight, shift}:     SelectRight,
	{tcell.KeyRight, ctrl}:      MoveWordRight,
	{tcell.KeyRight, ctrlShift}: SelectWordRight,

	{tcell.KeyUp, none}:      MoveUp,
	{tcell.KeyUp, shift}:     SelectUp,
	{tcell.KeyUp, ctrl}:      MoveJumpUp,
	{tcell.KeyUp, ctrlShift}: SelectJumpUp,
	{tcell.KeyUp, alt}:       MoveLineUp,

	{tcell.KeyDown, none}:      MoveDown,
	{tcell.KeyDown, shift}:     SelectDown,
	{tcell.KeyDown, ctrl}:      MoveJumpDown,
	{tcell.KeyDown, ctrlShift}: SelectJumpDown,
	{tcell.KeyDown, alt}:       MoveLineDown,

	{tcell.KeyHome, none}:  MoveHome,
	{tcell.KeyHome, shift}: SelectHome,
	{tcell.KeyEnd, none}:   MoveEnd,
	{tcell.KeyEnd, shift}:  SelectEnd,

	{tcell.KeyPgUp, none}:  MovePageUp,
	{tcell.KeyPgUp, shift}: SelectPageUp,
	{tcell.KeyPgDn, none}:  MovePageDown,
	{tcell.KeyPgDn, shift}: SelectPageDown,

	{tcell.KeyCtrlZ, ctrl}: Undo,
	{tcell.KeyCtrlY, ctrl}: Redo,
	{tcell.KeyCtrlC, ctrl}: Copy,
	{tcell.KeyCtrlX, ctrl}: Cut,
	{tcell.KeyCtrlV, ctrl}: Paste,
	{tcell.KeyCtrlS, ctrl}: Save,
	{tcell.KeyCtrlQ, ctrl}: Quit,

	{tcell.KeyCtrlK, ctrl}:       DeleteLine,
	{tcell.KeyCtrlD, ctrl}:       DuplicateLine,
	{tcell.KeyCtrlRightSq, ctrl}: MatchBracket,
	{tcell.KeyCtrlF, ctrl}:       Find,
	{tcell.KeyF3, none}:          FindNext,
	{tcell.KeyF3, shift}:         FindPrev,
	{tcell.KeyCtrlG, ctrl}:       GotoLine,
}

// Lookup resolves a key event to a command. For InsertChar the typed rune is
// returned as well. ok is false for unbound keys.
func Lookup(ev *tcell.EventKey) (cmd Command, r rune, ok bool) {
	key, mod := normalize(ev)
	if key == tcell.KeyRune {
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return None, 0, false
		}
		return InsertChar, ev.Rune(), true
	}
	cmd, ok = bindings[binding{key, mod}]
	return cmd, 0, ok
}

// normalize folds the ways terminals report the same chord onto one table
// key. Control codes always carry ModCtrl except for the four that are
// typeable on their own, and Meta is reported as Alt.
func normalize(ev *tcell.EventKey) (tcell.Key, tcell.ModMask) {
	key := ev.Key()
	mod := ev.Modifiers() & (tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)
	if mod&tcell.ModMeta != 0 {
		mod = mod&^tcell.ModMeta | tcell.ModAlt
	}
	switch key {
	case tcell.KeyBackspace2:
		key = tcell.KeyBackspace
	case tcell.KeyBacktab:
		return tcell.KeyTab, mod | tcell.ModShift
	}
	if key < tcell.Key(' ') {
		switch key {
		case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter, tcell.KeyEscape:
			mod &^= tcell.ModCtrl
		default:
			mod |= tcell.ModCtrl
		}
	}
	return key, mod
}
