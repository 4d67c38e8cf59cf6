package editor

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLoadWindowLongLineSpansTwoChunks(t *testing.T) {
	long := strings.Repeat("a", 5200)
	w, err := LoadWindow(strings.NewReader(long), DefaultChunkSize, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if w.Chunks() != 2 {
		t.Errorf("Chunks = %d, want 2", w.Chunks())
	}
	if w.Loaded() != 1 {
		t.Errorf("Loaded = %d, want 1", w.Loaded())
	}
	line, err := w.Line(0)
	if err != nil {
		t.Fatalf("Line(0): %v", err)
	}
	if line != long {
		t.Errorf("line length = %d, want 5200", len(line))
	}
}

func TestLoadWindowEveryChunkStitchesCorrectly(t *testing.T) {
	content := numberedLines(100)
	want := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	src := strings.NewReader(content)

	for k := 0; k < ChunkCount(src.Size(), 64); k++ {
		w, err := LoadWindow(src, 64, k)
		if err != nil {
			t.Fatalf("LoadWindow(%d): %v", k, err)
		}
		for n := w.StartLine(); n < w.EndLine(); n++ {
			got, err := w.Line(n)
			if err != nil {
				t.Fatalf("chunk %d Line(%d): %v", k, n, err)
			}
			if got != want[n] {
				t.Errorf("chunk %d Line(%d) = %q, want %q", k, n, got, want[n])
			}
		}
	}
}

func TestWindowGrowBothEnds(t *testing.T) {
	content := numberedLines(50)
	want := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	w, err := LoadWindow(strings.NewReader(content), 32, 5)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	start := w.StartLine()
	for !w.AtHead() {
		if err := w.GrowHead(); err != nil {
			t.Fatalf("GrowHead: %v", err)
		}
		if w.StartLine() > start {
			t.Fatalf("StartLine grew from %d to %d", start, w.StartLine())
		}
		start = w.StartLine()
	}
	for !w.AtTail() {
		if err := w.GrowTail(); err != nil {
			t.Fatalf("GrowTail: %v", err)
		}
	}
	if w.StartLine() != 0 {
		t.Errorf("StartLine = %d, want 0", w.StartLine())
	}
	if got := loadedLines(t, w); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded lines differ from file:\n got %q\nwant %q", got, want)
	}
}

func TestWindowLineAtOutsideWindow(t *testing.T) {
	w, err := LoadWindow(strings.NewReader(numberedLines(50)), 32, 5)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if _, _, ok := w.LineAt(w.StartLine() - 1); ok {
		t.Error("LineAt before the window should miss")
	}
	if _, _, ok := w.LineAt(w.EndLine()); ok {
		t.Error("LineAt after the window should miss")
	}
	_, err = w.Line(0)
	if !errors.Is(err, ErrLineNotLoaded) {
		t.Fatalf("Line(0) err = %v, want ErrLineNotLoaded", err)
	}
	var nl *LineNotLoadedError
	if !errors.As(err, &nl) || nl.Line != 0 {
		t.Errorf("LineNotLoadedError = %+v, want line 0", nl)
	}
	if err := w.InsertText(0, 0, "x"); !errors.Is(err, ErrLineNotLoaded) {
		t.Errorf("InsertText outside window err = %v, want ErrLineNotLoaded", err)
	}
}

func TestWindowEnsure(t *testing.T) {
	w, err := LoadWindow(strings.NewReader(numberedLines(50)), 32, 5)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if err := w.Ensure(0, 3); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !w.Has(0) || !w.Has(2) {
		t.Error("Ensure(0, 3) should load lines 0..2")
	}
	if err := w.Ensure(45, 1000); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !w.AtTail() || !w.Has(49) {
		t.Error("Ensure past the end should load the last chunk")
	}
}

func TestWindowEvict(t *testing.T) {
	content := numberedLines(100)
	want := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	w, err := LoadWindow(strings.NewReader(content), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if err := w.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	w.MaxChunks = 2
	if n := w.Evict(50, 55); n == 0 {
		t.Fatal("Evict dropped nothing")
	}
	if w.Chunks() > 2 {
		t.Errorf("Chunks = %d, want at most 2", w.Chunks())
	}
	for n := 50; n < 55; n++ {
		if !w.Has(n) {
			t.Errorf("kept line %d was evicted", n)
		}
	}
	for n := w.StartLine(); n < w.EndLine(); n++ {
		if got, _ := w.Line(n); got != want[n] {
			t.Errorf("Line(%d) = %q after eviction, want %q", n, got, want[n])
		}
	}
}

func TestWindowEvictKeepsDirtyChunks(t *testing.T) {
	w, err := LoadWindow(strings.NewReader(numberedLines(100)), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if err := w.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if err := w.InsertText(0, 0, "edited "); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	w.MaxChunks = 1
	w.Evict(90, 95)
	if !w.AtHead() {
		t.Error("dirty head chunk was evicted")
	}
	if got, _ := w.Line(0); got != "edited line 000" {
		t.Errorf("Line(0) = %q", got)
	}
}

func TestWindowMutations(t *testing.T) {
	w, err := LoadWindow(strings.NewReader("hello\nworld"), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}

	if err := w.InsertText(0, 5, ","); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if err := w.SplitLine(0, 6); err != nil {
		t.Fatalf("SplitLine: %v", err)
	}
	if got := loadedLines(t, w); !reflect.DeepEqual(got, []string{"hello,", "", "world"}) {
		t.Fatalf("after split = %q", got)
	}
	if err := w.JoinNext(1); err != nil {
		t.Fatalf("JoinNext: %v", err)
	}
	if got := loadedLines(t, w); !reflect.DeepEqual(got, []string{"hello,", "world"}) {
		t.Fatalf("after join = %q", got)
	}
	removed, err := w.DeleteGrapheme(0, 5)
	if err != nil {
		t.Fatalf("DeleteGrapheme: %v", err)
	}
	if removed != "," {
		t.Errorf("removed = %q, want %q", removed, ",")
	}
	if !w.Dirty() {
		t.Error("window should be dirty after edits")
	}
	if got := windowText(t, w); got != "hello\nworld" {
		t.Errorf("text = %q", got)
	}
}

func TestWindowDeleteGraphemeCluster(t *testing.T) {
	w, err := LoadWindow(strings.NewReader("e\u0301x"), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	removed, err := w.DeleteGrapheme(0, 0)
	if err != nil {
		t.Fatalf("DeleteGrapheme: %v", err)
	}
	if removed != "e\u0301" {
		t.Errorf("removed = %q, want the whole cluster", removed)
	}
	if n, _ := w.LineLength(0); n != 1 {
		t.Errorf("LineLength = %d, want 1", n)
	}
}

func TestWindowJoinAcrossChunks(t *testing.T) {
	content := numberedLines(20)
	w, err := LoadWindow(strings.NewReader(content), 32, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if err := w.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	// "line 002" ends at byte 26 and "line 003" at byte 35, so they live in
	// different chunks.
	ci2, _, _ := w.LineAt(2)
	ci3, _, _ := w.LineAt(3)
	if ci2 == ci3 {
		t.Fatalf("lines 2 and 3 share chunk %d", ci2)
	}
	if err := w.JoinNext(2); err != nil {
		t.Fatalf("JoinNext: %v", err)
	}
	if got, _ := w.Line(2); got != "line 002line 003" {
		t.Errorf("Line(2) = %q", got)
	}
	if got, _ := w.Line(3); got != "line 004" {
		t.Errorf("Line(3) = %q", got)
	}
	if w.Loaded() != 19 {
		t.Errorf("Loaded = %d, want 19", w.Loaded())
	}
}

func TestWindowInsertLinesAndDeleteRange(t *testing.T) {
	w, err := LoadWindow(strings.NewReader("abcdef\nxyz"), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	if err := w.InsertLines(0, 3, []string{"1", "2", "3"}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}
	want := []string{"abc1", "2", "3def", "xyz"}
	if got := loadedLines(t, w); !reflect.DeepEqual(got, want) {
		t.Fatalf("after InsertLines = %q, want %q", got, want)
	}

	text, err := w.Text(Pos{Col: 3, Line: 0}, Pos{Col: 1, Line: 2})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "1\n2\n3" {
		t.Errorf("Text = %q, want %q", text, "1\n2\n3")
	}

	if err := w.DeleteRange(Pos{Col: 3, Line: 0}, Pos{Col: 1, Line: 2}); err != nil {
		t.Fatalf("DeleteRange: %v", err)
	}
	if got := loadedLines(t, w); !reflect.DeepEqual(got, []string{"abcdef", "xyz"}) {
		t.Errorf("after DeleteRange = %q", got)
	}
}

func TestWindowWriteToRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"\n",
		"a",
		"a\n",
		"a\n\n",
		"ab\ncd\n",
		"crlf\r\nline\r\n",
		"crlf\r\n\r\n",
		numberedLines(40),
		strings.TrimSuffix(numberedLines(40), "\n"),
	}
	for _, content := range tests {
		w, err := LoadWindow(strings.NewReader(content), 16, 0)
		if err != nil {
			t.Fatalf("LoadWindow(%q): %v", content, err)
		}
		if err := w.LoadAll(); err != nil {
			t.Fatalf("LoadAll: %v", err)
		}
		if got := windowText(t, w); got != content {
			t.Errorf("round trip of %q = %q", content, got)
		}
	}
}

func TestWindowWriteToTrailingEmptyLine(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{[]string{""}, ""},
		{[]string{"abc", ""}, "abc\n\n"},
		{[]string{"abc\r", ""}, "abc\r\n\r\n"},
		{[]string{"a", "", ""}, "a\n\n\n"},
	}
	for _, tt := range tests {
		w, err := LoadWindow(strings.NewReader(""), 16, 0)
		if err != nil {
			t.Fatalf("LoadWindow: %v", err)
		}
		if err := w.InsertLines(0, 0, tt.lines); err != nil {
			t.Fatalf("InsertLines(%q): %v", tt.lines, err)
		}
		if got := windowText(t, w); got != tt.want {
			t.Errorf("WriteTo(%q) = %q, want %q", tt.lines, got, tt.want)
		}
		reloaded, err := LoadWindow(strings.NewReader(tt.want), 16, 0)
		if err != nil {
			t.Fatalf("LoadWindow: %v", err)
		}
		if err := reloaded.LoadAll(); err != nil {
			t.Fatalf("LoadAll: %v", err)
		}
		if got := reloaded.Loaded(); got != len(tt.lines) {
			t.Errorf("reload of %q holds %d lines, want %d", tt.want, got, len(tt.lines))
		}
	}
}

func TestWindowCloneIsIndependent(t *testing.T) {
	w, err := LoadWindow(strings.NewReader("one\ntwo"), 64, 0)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}
	cp := w.Clone()
	if err := w.InsertText(0, 0, "x"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got, _ := cp.Line(0); got != "one" {
		t.Errorf("clone Line(0) = %q, want %q", got, "one")
	}
	if cp.Dirty() {
		t.Error("clone should not see the later edit")
	}
}
