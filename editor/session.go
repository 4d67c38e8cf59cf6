package editor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// Motion identifies a cursor movement command.
type Motion int

const (
	MoveLeft Motion = iota
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
)

var motionNames = [...]string{
	MoveLeft:      "left",
	MoveRight:     "right",
	MoveUp:        "up",
	MoveDown:      "down",
	MoveHome:      "home",
	MoveEnd:       "end",
	MoveWordLeft:  "word-left",
	MoveWordRight: "word-right",
	MoveJumpUp:    "jump-up",
	MoveJumpDown:  "jump-down",
	MovePageUp:    "page-up",
	MovePageDown:  "page-down",
}

func (m Motion) String() string {
	if m < 0 || int(m) >= len(motionNames) {
		return fmt.Sprintf("motion(%d)", int(m))
	}
	return motionNames[m]
}

// Forward reports whether the motion moves toward the end of the file.
func (m Motion) Forward() bool {
	switch m {
	case MoveRight, MoveDown, MoveEnd, MoveWordRight, MoveJumpDown, MovePageDown:
		return true
	}
	return false
}

// Clipboard is the system clipboard boundary.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	ChunkSize     int
	MaxChunks     int
	TabWidth      int
	EastAsian     bool
	UndoThreshold int
	UndoLimit     int
	Height, Width int
	Clipboard     Clipboard
	Logger        *log.Logger
}

func (o *Options) defaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxChunks <= 0 {
		o.MaxChunks = DefaultMaxChunks
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	if o.UndoThreshold <= 0 {
		o.UndoThreshold = DefaultUndoThreshold
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Clipboard == nil {
		o.Clipboard = &Register{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
}

// Register is an in-process Clipboard.
type Register struct {
	text string
}

func (r *Register) ReadAll() (string, error) { return r.text, nil }

func (r *Register) WriteAll(text string) error {
	r.text = text
	return nil
}

// Session owns one window over one file together with the cursor, the
// selection and the undo history, and exposes the editing command surface.
// It is not safe for concurrent use.
type Session struct {
	opts Options
	path string
	src  Source

	// handles are every source opened by the session, including ones only
	// reachable from undo snapshots after a save.
	handles []io.Closer

	win  *Window
	cur  Cursor
	sel  Selection
	hist *History
	log  *log.Logger

	// crlf is the file's line ending convention, read from its first line
	// at open and after each save.
	crlf bool
}

// Open starts a session on the file at path. A missing file opens empty
// and is created on save.
func Open(path string, opts Options) (*Session, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(src, opts)
	if err != nil {
		src.Close()
		return nil, err
	}
	s.path = src.Path()
	s.handles = append(s.handles, src)
	return s, nil
}

// NewSession starts a session over an arbitrary source. Sessions created
// this way cannot Save.
func NewSession(src Source, opts Options) (*Session, error) {
	opts.defaults()
	win, err := LoadWindow(src, opts.ChunkSize, 0)
	if err != nil {
		return nil, err
	}
	win.MaxChunks = opts.MaxChunks
	fileLen, err := CountLines(src)
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts: opts,
		src:  src,
		win:  win,
		cur:  NewCursor(fileLen, opts.Height, opts.Width, NewMeasurer(opts.TabWidth, opts.EastAsian)),
		sel:  NewSelection(),
		hist: NewHistory(opts.UndoThreshold, opts.UndoLimit),
		log:  opts.Logger,
		crlf: detectCRLF(win, fileLen),
	}
	if err := s.settle(); err != nil {
		return nil, err
	}
	s.log.Printf("opened %d lines, %d bytes, window chunks %d..%d", fileLen, src.Size(), win.Head(), win.Tail())
	return s, nil
}

// CountLines returns the number of lines in src: one more than the number of
// terminators, minus one when the source ends with a terminator.
func CountLines(src Source) (int, error) {
	size := src.Size()
	if size == 0 {
		return 1, nil
	}
	buf := make([]byte, 64*1024)
	n := 1
	var last byte
	for off := int64(0); off < size; {
		read, err := src.ReadAt(buf, off)
		for _, b := range buf[:read] {
			if b == '\n' {
				n++
			}
		}
		if read > 0 {
			last = buf[read-1]
		}
		off += int64(read)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, &IOError{Op: "count", Chunk: -1, Err: err}
		}
	}
	if last == '\n' {
		n--
	}
	return n, nil
}

// Path returns the file path, or "" for sessions without a file.
func (s *Session) Path() string { return s.path }

// Cursor returns a copy of the cursor state.
func (s *Session) Cursor() Cursor { return s.cur }

// Selection returns a copy of the selection.
func (s *Session) Selection() Selection { return s.sel }

// Window returns the live window.
func (s *Session) Window() *Window { return s.win }

// FileLen returns the number of lines in the whole file.
func (s *Session) FileLen() int { return s.cur.FileLen }

// History returns the undo history.
func (s *Session) History() *History { return s.hist }

// Dirty reports whether the buffer differs from the file on disk.
func (s *Session) Dirty() bool {
	return s.win.Dirty() || s.win.Source() != s.src
}

// Line returns an absolute line. Lines in the viewport are always loaded.
func (s *Session) Line(n int) (string, error) { return s.win.Line(n) }

// LineEnding reports "CRLF" when the file's first line break is a CRLF,
// "LF" otherwise.
func (s *Session) LineEnding() string {
	if s.crlf {
		return "CRLF"
	}
	return "LF"
}

// detectCRLF reports whether the first line of w, which must hold the head
// chunk, ends with a CRLF break.
func detectCRLF(w *Window, fileLen int) bool {
	if !w.AtHead() {
		return false
	}
	line, err := w.Line(0)
	if err != nil || !strings.HasSuffix(line, "\r") {
		return false
	}
	return fileLen > 1 || w.FinalNewline()
}

// IndentStyle describes the indentation used by the loaded lines.
func (s *Session) IndentStyle() string {
	lines := make([]string, 0, s.win.Loaded())
	for n := s.win.StartLine(); n < s.win.EndLine(); n++ {
		line, err := s.win.Line(n)
		if err != nil {
			break
		}
		lines = append(lines, line)
	}
	indent := DetectIndentStyle(lines)
	if indent == "\t" {
		return "tabs"
	}
	return fmt.Sprintf("spaces(%d)", len(indent))
}

// Resize updates the viewport size.
func (s *Session) Resize(height, width int) error {
	s.cur.Resize(height, width)
	return s.settle()
}

// Move applies a motion. With extend the selection grows or shrinks toward
// the new position; without it the selection is cleared.
func (s *Session) Move(m Motion, extend bool) error {
	before := s.cur.Pos()
	if extend {
		s.sel.Begin(s.cur.Screen, before, s.cur.Top)
	}
	if err := s.motion(m); err != nil {
		return err
	}
	after := s.cur.Pos()
	switch {
	case !extend:
		s.sel.Clear()
	case (m == MoveHome || m == MoveEnd) && s.sel.ExtendLine(before, after):
	default:
		s.sel.Extend(before, after, m.Forward())
	}
	return s.settle()
}

func (s *Session) motion(m Motion) error {
	w := s.win
	switch m {
	case MoveLeft:
		return s.cur.Left(w)
	case MoveRight:
		return s.cur.Right(w)
	case MoveUp:
		return s.cur.Up(w)
	case MoveDown:
		return s.cur.Down(w)
	case MoveHome:
		return s.cur.Home(w)
	case MoveEnd:
		return s.cur.End(w)
	case MoveWordLeft:
		return s.cur.WordLeft(w)
	case MoveWordRight:
		return s.cur.WordRight(w)
	case MoveJumpUp:
		return s.cur.JumpUp(w)
	case MoveJumpDown:
		return s.cur.JumpDown(w)
	case MovePageUp:
		return s.cur.PageUp(w)
	case MovePageDown:
		return s.cur.PageDown(w)
	}
	return fmt.Errorf("unknown motion %v", m)
}

// InsertRune types r at the cursor, replacing any selection.
func (s *Session) InsertRune(r rune) error {
	if r == '\n' || r == '\r' {
		return s.Newline()
	}
	if err := s.dropSelection(); err != nil {
		return err
	}
	s.record(false)
	line := s.cur.Line()
	text := string(r)
	if err := s.retry(line, func() error { return s.win.InsertText(line, s.cur.TextPos, text) }); err != nil {
		return err
	}
	s.cur.TextPos += len(text)
	if err := s.cur.Sync(s.win); err != nil {
		return err
	}
	s.cur.Stored = s.cur.Screen.X
	return s.settle()
}

// InsertTab inserts a literal tab.
func (s *Session) InsertTab() error { return s.InsertRune('\t') }

// Newline splits the cursor line and moves to the start of the new line.
func (s *Session) Newline() error {
	if err := s.dropSelection(); err != nil {
		return err
	}
	line := s.cur.Line()
	text, err := s.cur.Current(s.win)
	if err != nil {
		return err
	}
	s.record(true)
	split := func() error { return s.win.SplitLine(line, s.cur.TextPos) }
	if cr := s.lineBreak(text); cr != "" {
		split = func() error { return s.win.InsertLines(line, s.cur.TextPos, []string{cr, ""}) }
	}
	if err := s.retry(line, split); err != nil {
		return err
	}
	s.cur.FileLen++
	if err := s.cur.Down(s.win); err != nil {
		return err
	}
	s.cur.home()
	s.cur.Stored = 0
	return s.settle()
}

// Backspace deletes the selection, the grapheme before the cursor, or the
// line break before the cursor line.
func (s *Session) Backspace() error {
	if !s.sel.Empty {
		return s.deleteSelection()
	}
	line := s.cur.Line()
	switch {
	case s.cur.TextPos > 0:
		text, err := s.cur.Current(s.win)
		if err != nil {
			return err
		}
		s.record(false)
		prev := PrevBoundary(text, s.cur.TextPos)
		if _, err := s.win.DeleteGrapheme(line, prev); err != nil {
			return err
		}
		s.cur.TextPos = prev
	case line > 0:
		s.record(true)
		if err := s.cur.Left(s.win); err != nil {
			return err
		}
		if err := s.retry(line-1, func() error { return s.win.JoinNext(line - 1) }); err != nil {
			return err
		}
		s.cur.FileLen--
	default:
		return nil
	}
	if err := s.cur.Sync(s.win); err != nil {
		return err
	}
	s.cur.Stored = s.cur.Screen.X
	return s.settle()
}

// Delete deletes the selection, the grapheme under the cursor, or the line
// break after the cursor line.
func (s *Session) Delete() error {
	if !s.sel.Empty {
		return s.deleteSelection()
	}
	line := s.cur.Line()
	text, err := s.cur.Current(s.win)
	if err != nil {
		return err
	}
	switch {
	case s.cur.TextPos < contentEnd(text):
		s.record(false)
		if _, err := s.win.DeleteGrapheme(line, s.cur.TextPos); err != nil {
			return err
		}
	case line < s.cur.FileLen-1:
		s.record(true)
		if err := s.retry(line, func() error { return s.win.JoinNext(line) }); err != nil {
			return err
		}
		s.cur.FileLen--
	default:
		return nil
	}
	if err := s.cur.Sync(s.win); err != nil {
		return err
	}
	return s.settle()
}

// Copy writes the selection to the clipboard and clears it.
func (s *Session) Copy() error {
	if s.sel.Empty {
		return nil
	}
	text, err := s.selectedText()
	if err != nil {
		return err
	}
	if err := s.opts.Clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	s.sel.Clear()
	return nil
}

// Cut copies the selection and deletes it.
func (s *Session) Cut() error {
	if s.sel.Empty {
		return nil
	}
	text, err := s.selectedText()
	if err != nil {
		return err
	}
	if err := s.opts.Clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	return s.deleteSelection()
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
func (s *Session) Paste() error {
	text, err := s.opts.Clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return s.InsertText(text)
}

// InsertText inserts possibly multi-line text at the cursor as one undo
// step, leaving the cursor after it.
func (s *Session) InsertText(text string) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	if err := s.dropSelection(); err != nil {
		return err
	}
	s.record(true)
	pos := s.cur.Pos()
	pieces := strings.Split(text, "\n")
	if line, err := s.cur.Current(s.win); err == nil {
		if cr := s.lineBreak(line); cr != "" {
			for i := range pieces[:len(pieces)-1] {
				pieces[i] += cr
			}
		}
	}
	if err := s.retry(pos.Line, func() error { return s.win.InsertLines(pos.Line, pos.Col, pieces) }); err != nil {
		return err
	}
	added := len(pieces) - 1
	s.cur.FileLen += added
	end := Pos{Line: pos.Line + added, Col: len(pieces[added])}
	if added == 0 {
		end.Col += pos.Col
	}
	if err := s.cur.MoveTo(s.win, end); err != nil {
		return err
	}
	return s.settle()
}

// Undo restores the state before the last recorded edit.
func (s *Session) Undo() error {
	prev, ok := s.hist.Undo(s.snapshot(false))
	if !ok {
		return nil
	}
	return s.restore(prev)
}

// Redo re-applies the last undone edit.
func (s *Session) Redo() error {
	next, ok := s.hist.Redo(s.snapshot(false))
	if !ok {
		return nil
	}
	return s.restore(next)
}

// Close releases every file handle opened by the session.
func (s *Session) Close() error {
	var errs []error
	for _, h := range s.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.handles = nil
	return errors.Join(errs...)
}

// snapshot captures the live state. Without clone the live window itself is
// handed over, which is only valid when it is about to be replaced.
func (s *Session) snapshot(clone bool) Snapshot {
	w := s.win
	if clone {
		w = w.Clone()
	}
	return Snapshot{Cursor: s.cur, Window: w, Selection: s.sel}
}

func (s *Session) record(force bool) {
	s.hist.Record(s.snapshot(true), force)
}

func (s *Session) restore(snap Snapshot) error {
	height, width := s.cur.Height, s.cur.Width
	s.win = snap.Window
	s.cur = snap.Cursor
	s.sel = snap.Selection
	s.cur.Resize(height, width)
	return s.settle()
}

// lineBreak returns the carriage return a new break in line needs: the
// line's own, or the file's when it uses CRLF.
func (s *Session) lineBreak(line string) string {
	if s.crlf || strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}

func (s *Session) selectedText() (string, error) {
	if err := s.win.Ensure(s.sel.Start.Line, s.sel.End.Line+1); err != nil {
		return "", err
	}
	return s.win.Text(s.sel.Start, s.sel.End)
}

func (s *Session) dropSelection() error {
	if s.sel.Empty {
		return nil
	}
	return s.deleteSelection()
}

func (s *Session) deleteSelection() error {
	start, end := s.sel.Start, s.sel.End
	s.record(true)
	if err := s.win.Ensure(start.Line, end.Line+1); err != nil {
		return err
	}
	if err := s.win.DeleteRange(start, end); err != nil {
		return err
	}
	s.cur.FileLen -= end.Line - start.Line
	s.sel.Clear()
	if err := s.cur.MoveTo(s.win, start); err != nil {
		return err
	}
	return s.settle()
}

// retry runs op, growing the window around line and retrying once when the
// line was not loaded.
func (s *Session) retry(line int, op func() error) error {
	err := op()
	if !errors.Is(err, ErrLineNotLoaded) {
		return err
	}
	s.log.Printf("line %d not loaded, growing window", line)
	if err := s.win.Ensure(line, line+2); err != nil {
		return err
	}
	return op()
}

// settle loads every viewport line and evicts chunks far from it.
func (s *Session) settle() error {
	from, to := s.cur.Top, s.cur.Top+s.cur.Height
	head, tail := s.win.Head(), s.win.Tail()
	if err := s.win.Ensure(from, to); err != nil {
		return err
	}
	if n := s.win.Evict(from, to); n > 0 {
		s.log.Printf("evicted %d chunks", n)
	}
	if head != s.win.Head() || tail != s.win.Tail() {
		s.log.Printf("window chunks %d..%d, first line %d", s.win.Head(), s.win.Tail(), s.win.StartLine())
	}
	return nil
}
