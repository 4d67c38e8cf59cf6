package editor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// newTestSession opens content as a session. chunkSize 0 picks the default.
func newTestSession(t *testing.T, content string, chunkSize, height int) *Session {
	t.Helper()
	s, err := NewSession(strings.NewReader(content), Options{
		ChunkSize: chunkSize,
		Height:    height,
		Width:     80,
		TabWidth:  4,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// windowText renders every loaded line the way Save would.
func windowText(t *testing.T, w *Window) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.String()
}

func loadedLines(t *testing.T, w *Window) []string {
	t.Helper()
	var out []string
	for n := w.StartLine(); n < w.EndLine(); n++ {
		line, err := w.Line(n)
		if err != nil {
			t.Fatalf("Line(%d): %v", n, err)
		}
		out = append(out, line)
	}
	return out
}

func mustLine(t *testing.T, s *Session, n int) string {
	t.Helper()
	line, err := s.Line(n)
	if err != nil {
		t.Fatalf("Line(%d): %v", n, err)
	}
	return line
}

func mustMove(t *testing.T, s *Session, m Motion, extend bool, times int) {
	t.Helper()
	for range times {
		if err := s.Move(m, extend); err != nil {
			t.Fatalf("Move(%v): %v", m, err)
		}
	}
}

// numberedLines returns n lines "line 000".."line NNN", each terminated, so
// chunk boundaries fall mid-line for most chunk sizes.
func numberedLines(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "line %03d\n", i)
	}
	return b.String()
}
