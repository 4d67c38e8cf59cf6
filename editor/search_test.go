package editor

import (
	"strings"
	"testing"
)

func TestFindForwardWraps(t *testing.T) {
	s := newTestSession(t, "foo bar\nbar baz\nqux foo", 0, 10)

	var got []Pos
	for range 3 {
		ok, err := s.Find("bar", true)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if !ok {
			t.Fatal("Find reported no match")
		}
		got = append(got, s.Selection().Start)
	}
	want := []Pos{{Col: 4, Line: 0}, {Col: 0, Line: 1}, {Col: 4, Line: 0}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match starts = %v, want %v", got, want)
		}
	}
	sel := s.Selection()
	if sel.End != (Pos{Col: 7, Line: 0}) || s.Cursor().Pos() != sel.End {
		t.Errorf("selection = %v..%v cursor %v", sel.Start, sel.End, s.Cursor().Pos())
	}
}

func TestFindBackward(t *testing.T) {
	s := newTestSession(t, "foo bar\nbar baz\nqux foo", 0, 10)
	if err := s.GotoLine(3); err != nil {
		t.Fatalf("GotoLine: %v", err)
	}

	ok, err := s.Find("bar", false)
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if got := s.Selection().Start; got != (Pos{Col: 0, Line: 1}) {
		t.Errorf("first backward match = %v, want 2:0", got)
	}
	if s.Cursor().Pos() != s.Selection().Start {
		t.Error("backward search should leave the cursor at the match start")
	}
	if ok, _ := s.Find("bar", false); !ok || s.Selection().Start != (Pos{Col: 4, Line: 0}) {
		t.Errorf("second backward match = %v", s.Selection().Start)
	}
}

func TestFindChangingDirection(t *testing.T) {
	s := newTestSession(t, "foo foo foo", 0, 10)
	steps := []struct {
		forward    bool
		start, end Pos
	}{
		{true, Pos{Col: 0}, Pos{Col: 3}},
		{true, Pos{Col: 4}, Pos{Col: 7}},
		{false, Pos{Col: 0}, Pos{Col: 3}},
		{true, Pos{Col: 4}, Pos{Col: 7}},
		{true, Pos{Col: 8}, Pos{Col: 11}},
		{false, Pos{Col: 4}, Pos{Col: 7}},
	}
	for i, step := range steps {
		ok, err := s.Find("foo", step.forward)
		if err != nil || !ok {
			t.Fatalf("step %d: Find = %v, %v", i, ok, err)
		}
		sel := s.Selection()
		if sel.Start != step.start || sel.End != step.end {
			t.Errorf("step %d (forward=%v): selection = %v..%v, want %v..%v",
				i, step.forward, sel.Start, sel.End, step.start, step.end)
		}
	}
}

func TestFindNoMatch(t *testing.T) {
	s := newTestSession(t, "abc\ndef", 0, 10)
	for _, q := range []string{"zzz", "", "c\nd"} {
		ok, err := s.Find(q, true)
		if err != nil {
			t.Fatalf("Find(%q): %v", q, err)
		}
		if ok {
			t.Errorf("Find(%q) should not match", q)
		}
	}
	if !s.Selection().Empty {
		t.Error("a failed search should not select anything")
	}
}

func TestFindPagesThroughChunks(t *testing.T) {
	content := numberedLines(300) + "needle\n"
	s, err := NewSession(strings.NewReader(content), Options{ChunkSize: 64, MaxChunks: 3, Height: 5, Width: 80})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ok, err := s.Find("needle", true)
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if got := s.Cursor().Line(); got != 300 {
		t.Errorf("cursor line = %d, want 300", got)
	}
	if s.Window().AtHead() {
		t.Error("head chunks should be evicted after paging to the match")
	}
}

func TestGotoLine(t *testing.T) {
	s := newTestSession(t, numberedLines(50), 64, 10)
	if err := s.GotoLine(30); err != nil {
		t.Fatalf("GotoLine: %v", err)
	}
	if got := s.Cursor().Line(); got != 29 {
		t.Errorf("cursor line = %d, want 29", got)
	}
	if err := s.GotoLine(500); err != nil {
		t.Fatalf("GotoLine: %v", err)
	}
	if got := s.Cursor().Line(); got != 49 {
		t.Errorf("cursor line = %d, want 49", got)
	}
	if err := s.GotoLine(0); err == nil {
		t.Error("GotoLine(0) should fail")
	}
}

func TestTitle(t *testing.T) {
	if got := newTestSession(t, "", 0, 10).Title(); got != "untitled" {
		t.Errorf("Title = %q, want untitled", got)
	}
}
