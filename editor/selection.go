package editor

import "fmt"

// Pos is a logical position: a byte offset inside a line (always on a
// grapheme boundary) and an absolute line number.
type Pos struct {
	Col, Line int
}

// Before reports whether p sorts strictly before q by (line, column).
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col)
}

// Point is a screen cell relative to the viewport's top-left corner.
type Point struct {
	X, Y int
}

// Selection is an anchor/boundary pair over logical positions. When Empty is
// false, Start never sorts after End. The origin fields record where the
// cursor was when the selection was first extended.
type Selection struct {
	Start, End Pos
	Empty      bool

	originScreen Point
	originPos    Pos
	originTop    int
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{Empty: true}
}

// Clear collapses the selection.
func (s *Selection) Clear() {
	*s = Selection{Empty: true}
}

// Origin returns the cursor state captured when the selection began.
func (s *Selection) Origin() (screen Point, pos Pos, top int) {
	return s.originScreen, s.originPos, s.originTop
}

// Begin captures the origin of a new selection. It is a no-op when the
// selection is already active.
func (s *Selection) Begin(screen Point, pos Pos, top int) {
	if !s.Empty {
		return
	}
	s.originScreen = screen
	s.originPos = pos
	s.originTop = top
}

// Extend updates the selection after a movement from before to after.
// forward reports the direction of the movement that produced after.
func (s *Selection) Extend(before, after Pos, forward bool) {
	if s.Empty {
		s.open(after, forward)
		return
	}

	moving, fixed := s.roles(before)
	switch {
	case after == fixed:
		// Reversed back onto the anchor.
		s.Empty = true
	case moving == s.End && !after.Before(fixed):
		s.End = after
	case moving == s.Start && after.Before(fixed):
		s.Start = after
	default:
		// Crossed the anchor: the old anchor bounds the far side and the
		// reached point becomes the moving boundary.
		if after.Before(fixed) {
			s.Start, s.End = after, fixed
		} else {
			s.Start, s.End = fixed, after
		}
	}
}

// ExtendLine handles Home/End while the whole selection and the destination
// share one line. The selection deselects toward the side nearer the cursor
// instead of applying the multi-line swap rule. It reports false when the
// special case does not apply.
func (s *Selection) ExtendLine(before, after Pos) bool {
	if s.Empty || s.Start.Line != s.End.Line || after.Line != s.Start.Line {
		return false
	}
	anchor := s.Start
	if before == s.Start {
		anchor = s.End
	}
	if s.originPos.Line == after.Line && (s.originPos == s.Start || s.originPos == s.End) {
		anchor = s.originPos
	}
	switch {
	case after == anchor:
		s.Empty = true
	case after.Before(anchor):
		s.Start, s.End = after, anchor
	default:
		s.Start, s.End = anchor, after
	}
	return true
}

// Contains reports whether p lies inside the selection (end exclusive).
func (s *Selection) Contains(p Pos) bool {
	if s.Empty {
		return false
	}
	return !p.Before(s.Start) && p.Before(s.End)
}

func (s *Selection) open(after Pos, forward bool) {
	if after == s.originPos {
		return
	}
	s.Empty = false
	if forward {
		s.Start, s.End = s.originPos, after
	} else {
		s.Start, s.End = after, s.originPos
	}
}

// roles returns the boundary the cursor sits on and the opposite anchor.
func (s *Selection) roles(cursor Pos) (moving, fixed Pos) {
	if cursor == s.Start && cursor != s.End {
		return s.Start, s.End
	}
	return s.End, s.Start
}
