package editor

// bracketPairs maps each bracket character to its matching partner.
var bracketPairs = map[byte]byte{
	'(': ')',
	')': '(',
	'{': '}',
	'}': '{',
	'[': ']',
	']': '[',
}

// openBrackets is the set of opening bracket characters.
var openBrackets = map[byte]bool{
	'(': true,
	'{': true,
	'[': true,
}

// maxBracketLines bounds how far MatchBracket pages through the file.
const maxBracketLines = 10000

// MatchBracket moves the cursor to the bracket matching the one under it,
// or the one just before it, searching across lines.
// Supports: () {} []
func (s *Session) MatchBracket() (bool, error) {
	text, err := s.cur.Current(s.win)
	if err != nil {
		return false, err
	}
	for _, col := range []int{s.cur.TextPos, s.cur.TextPos - 1} {
		if col < 0 || col >= len(text) {
			continue
		}
		if _, ok := bracketPairs[text[col]]; !ok {
			continue
		}
		match, found, err := s.findPartner(Pos{Col: col, Line: s.cur.Line()}, text)
		if err != nil || !found {
			return false, err
		}
		s.sel.Clear()
		if err := s.cur.MoveTo(s.win, match); err != nil {
			return false, err
		}
		return true, s.settle()
	}
	return false, nil
}

// findPartner scans from the bracket at p, forward for an opening bracket
// and backward for a closing one, tracking nesting depth.
func (s *Session) findPartner(p Pos, text string) (Pos, bool, error) {
	ch := text[p.Col]
	partner := bracketPairs[ch]
	dir := 1
	if !openBrackets[ch] {
		dir = -1
	}

	depth := 0
	line, col := p.Line, p.Col
	for scanned := 0; scanned < maxBracketLines; scanned++ {
		for ; col >= 0 && col < len(text); col += dir {
			switch text[col] {
			case ch:
				depth++
			case partner:
				depth--
				if depth == 0 {
					return Pos{Col: col, Line: line}, true, nil
				}
			}
		}
		line += dir
		if line < 0 || line >= s.cur.FileLen {
			return Pos{}, false, nil
		}
		var err error
		if text, err = s.cur.line(s.win, line); err != nil {
			return Pos{}, false, err
		}
		col = 0
		if dir < 0 {
			col = len(text) - 1
		}
	}
	return Pos{}, false, nil
}
