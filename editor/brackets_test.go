package editor

import "testing"

func TestMatchBracket(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		from   Pos
		want   Pos
		wantOK bool
	}{
		{"open paren", "a(b)", Pos{Col: 1}, Pos{Col: 3}, true},
		{"close paren", "a(b)", Pos{Col: 3}, Pos{Col: 1}, true},
		{"after close paren", "a(b)", Pos{Col: 4}, Pos{Col: 1}, true},
		{"nested", "((a))", Pos{Col: 0}, Pos{Col: 4}, true},
		{"open brace", "{x}", Pos{Col: 0}, Pos{Col: 2}, true},
		{"open bracket", "[x]", Pos{Col: 0}, Pos{Col: 2}, true},
		{"across lines", "func() {\n\tx()\n}", Pos{Col: 7}, Pos{Col: 0, Line: 2}, true},
		{"backward across lines", "{\n\t[\n\t]\n}", Pos{Col: 0, Line: 3}, Pos{Col: 0}, true},
		{"no match", "a(b", Pos{Col: 1}, Pos{Col: 1}, false},
		{"not a bracket", "abc", Pos{Col: 1}, Pos{Col: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.text, 0, 10)
			if err := s.cur.MoveTo(s.win, tt.from); err != nil {
				t.Fatalf("MoveTo: %v", err)
			}
			ok, err := s.MatchBracket()
			if err != nil {
				t.Fatalf("MatchBracket: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("MatchBracket ok = %v, want %v", ok, tt.wantOK)
			}
			if got := s.Cursor().Pos(); got != tt.want {
				t.Errorf("cursor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchBracketAcrossChunks(t *testing.T) {
	content := "{\n" + numberedLines(60) + "}\n"
	s := newTestSession(t, content, 64, 5)
	ok, err := s.MatchBracket()
	if err != nil {
		t.Fatalf("MatchBracket: %v", err)
	}
	if !ok {
		t.Fatal("MatchBracket found nothing")
	}
	if got := s.Cursor().Pos(); got != (Pos{Col: 0, Line: 61}) {
		t.Errorf("cursor = %v, want 62:0", got)
	}
	if s.Cursor().Top != 57 {
		t.Errorf("Top = %d, want 57", s.Cursor().Top)
	}
}
