package editor

import (
	"fmt"
	"io"
	"strings"
)

// DefaultMaxChunks bounds how many clean chunks a window keeps loaded.
const DefaultMaxChunks = 16

// Window is a contiguous run of loaded chunks presenting part of a file as
// lines. Chunk indices are consecutive from Head to Tail, and start is the
// absolute line number of the first line of the head chunk.
//
// No chunk inside a window ever carries a partial line: the successor that
// holds the stitched line is always loaded alongside it.
type Window struct {
	src       Source
	chunkSize int
	numChunks int

	// MaxChunks is the eviction threshold. Dirty chunks are never evicted.
	MaxChunks int

	start  int
	chunks []*Chunk
	dirty  bool
}

// LoadWindow builds a window holding chunk index of src. The window grows at
// the tail when the chunk ends in the middle of a line.
func LoadWindow(src Source, chunkSize, index int) (*Window, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	w := &Window{
		src:       src,
		chunkSize: chunkSize,
		numChunks: ChunkCount(src.Size(), chunkSize),
		MaxChunks: DefaultMaxChunks,
	}
	if index < 0 || index >= w.numChunks {
		return nil, &IOError{Op: "load", Chunk: index, Err: fmt.Errorf("chunk out of range (have %d)", w.numChunks)}
	}
	c, err := LoadChunk(src, index, chunkSize)
	if err != nil {
		return nil, err
	}
	start, err := countTerminators(src, index, chunkSize)
	if err != nil {
		return nil, err
	}
	w.start = start
	w.chunks = []*Chunk{c}
	if err := w.completeTail(); err != nil {
		return nil, err
	}
	return w, nil
}

// ChunkForOffset returns the index of the chunk holding byte offset off.
func (w *Window) ChunkForOffset(off int64) int {
	idx := int(off / int64(w.chunkSize))
	if idx >= w.numChunks {
		idx = w.numChunks - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Head returns the index of the first loaded chunk.
func (w *Window) Head() int { return w.chunks[0].Index }

// Tail returns the index of the last loaded chunk.
func (w *Window) Tail() int { return w.chunks[len(w.chunks)-1].Index }

// StartLine returns the absolute line number of the first loaded line.
func (w *Window) StartLine() int { return w.start }

// EndLine returns one past the absolute line number of the last loaded line.
func (w *Window) EndLine() int { return w.start + w.Loaded() }

// AtHead reports whether the window starts at the beginning of the file.
func (w *Window) AtHead() bool { return w.Head() == 0 }

// AtTail reports whether the window reaches the end of the file.
func (w *Window) AtTail() bool { return w.Tail() == w.numChunks-1 }

// Chunks returns the number of loaded chunks.
func (w *Window) Chunks() int { return len(w.chunks) }

// Dirty reports whether any loaded line was edited since load or save.
func (w *Window) Dirty() bool { return w.dirty }

// Source returns the backing store the window pages from.
func (w *Window) Source() Source { return w.src }

// FinalNewline reports whether the file ends with a terminator. Only
// meaningful once the last chunk is loaded.
func (w *Window) FinalNewline() bool {
	last := w.chunks[len(w.chunks)-1]
	return last.EOF && last.Terminated
}

// Loaded returns the number of lines held by all loaded chunks.
func (w *Window) Loaded() int {
	n := 0
	for _, c := range w.chunks {
		n += c.LineCount()
	}
	return n
}

// GrowHead loads the chunk before the head.
func (w *Window) GrowHead() error {
	if w.AtHead() {
		return nil
	}
	c, err := LoadChunk(w.src, w.Head()-1, w.chunkSize)
	if err != nil {
		return err
	}
	c.dropPartial()
	w.chunks = append([]*Chunk{c}, w.chunks...)
	w.start -= c.LineCount()
	return nil
}

// GrowTail loads the chunk after the tail, continuing until the new tail
// ends on a complete line.
func (w *Window) GrowTail() error {
	if w.AtTail() {
		return nil
	}
	if err := w.appendTail(); err != nil {
		return err
	}
	return w.completeTail()
}

func (w *Window) appendTail() error {
	c, err := LoadChunk(w.src, w.Tail()+1, w.chunkSize)
	if err != nil {
		return err
	}
	w.chunks[len(w.chunks)-1].dropPartial()
	w.chunks = append(w.chunks, c)
	return nil
}

func (w *Window) completeTail() error {
	for w.chunks[len(w.chunks)-1].partial {
		if err := w.appendTail(); err != nil {
			return err
		}
	}
	return nil
}

// LineAt converts an absolute line number to a chunk position and a line
// index inside that chunk. ok is false when the line is not loaded.
func (w *Window) LineAt(line int) (chunk, index int, ok bool) {
	if line < w.start {
		return 0, 0, false
	}
	n := w.start
	for i, c := range w.chunks {
		cnt := c.LineCount()
		if line < n+cnt {
			return i, line - n, true
		}
		n += cnt
	}
	return 0, 0, false
}

// Has reports whether line is loaded.
func (w *Window) Has(line int) bool {
	_, _, ok := w.LineAt(line)
	return ok
}

// Ensure grows the window until every line in [from, to) is loaded or the
// file edge is reached.
func (w *Window) Ensure(from, to int) error {
	if from < 0 {
		from = 0
	}
	for from < w.start && !w.AtHead() {
		if err := w.GrowHead(); err != nil {
			return err
		}
	}
	for to > w.EndLine() && !w.AtTail() {
		if err := w.GrowTail(); err != nil {
			return err
		}
	}
	return nil
}

// Evict drops clean chunks from either end while the window holds more than
// MaxChunks. Chunks holding any line in [keepFrom, keepTo) are kept. It
// returns the number of chunks dropped.
func (w *Window) Evict(keepFrom, keepTo int) int {
	if w.MaxChunks <= 0 {
		return 0
	}
	dropped := 0
	for len(w.chunks) > w.MaxChunks {
		head := w.chunks[0]
		if !head.dirty && w.start+head.LineCount() <= keepFrom {
			w.start += head.LineCount()
			w.chunks = w.chunks[1:]
			dropped++
			continue
		}
		tail := w.chunks[len(w.chunks)-1]
		if !tail.dirty && w.EndLine()-tail.LineCount() >= keepTo {
			w.chunks = w.chunks[:len(w.chunks)-1]
			dropped++
			continue
		}
		break
	}
	return dropped
}

// LoadAll loads every chunk of the file.
func (w *Window) LoadAll() error {
	for !w.AtHead() {
		if err := w.GrowHead(); err != nil {
			return err
		}
	}
	for !w.AtTail() {
		if err := w.GrowTail(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy sharing only the backing source.
func (w *Window) Clone() *Window {
	cp := *w
	cp.chunks = make([]*Chunk, len(w.chunks))
	for i, c := range w.chunks {
		cp.chunks[i] = c.clone()
	}
	return &cp
}

func (w *Window) notLoaded(line int) error {
	return &LineNotLoadedError{Line: line, Head: w.Head(), Tail: w.Tail()}
}

func (w *Window) resolve(line int) (*Chunk, int, error) {
	ci, li, ok := w.LineAt(line)
	if !ok {
		return nil, 0, w.notLoaded(line)
	}
	return w.chunks[ci], li, nil
}

func (w *Window) touch(c *Chunk) {
	c.dirty = true
	w.dirty = true
}

// Line returns the text of an absolute line.
func (w *Window) Line(line int) (string, error) {
	c, li, err := w.resolve(line)
	if err != nil {
		return "", err
	}
	return c.Lines[li], nil
}

// LineLength returns the number of grapheme clusters in an absolute line.
func (w *Window) LineLength(line int) (int, error) {
	s, err := w.Line(line)
	if err != nil {
		return 0, err
	}
	return GraphemeCount(s), nil
}

// InsertText inserts s, which must not contain '\n', at byte offset col.
func (w *Window) InsertText(line, col int, s string) error {
	c, li, err := w.resolve(line)
	if err != nil {
		return err
	}
	cur := c.Lines[li]
	if col < 0 || col > len(cur) {
		return fmt.Errorf("insert at column %d of line %d (length %d)", col, line, len(cur))
	}
	c.Lines[li] = cur[:col] + s + cur[col:]
	w.touch(c)
	return nil
}

// DeleteGrapheme removes the grapheme cluster starting at byte offset col and
// returns it. Deleting at the end of the line is a no-op.
func (w *Window) DeleteGrapheme(line, col int) (string, error) {
	c, li, err := w.resolve(line)
	if err != nil {
		return "", err
	}
	cur := c.Lines[li]
	if col < 0 || col > len(cur) {
		return "", fmt.Errorf("delete at column %d of line %d (length %d)", col, line, len(cur))
	}
	end := NextBoundary(cur, col)
	if end == col {
		return "", nil
	}
	removed := cur[col:end]
	c.Lines[li] = cur[:col] + cur[end:]
	w.touch(c)
	return removed, nil
}

// SplitLine truncates line at byte offset col and inserts the remainder as a
// new line directly below.
func (w *Window) SplitLine(line, col int) error {
	c, li, err := w.resolve(line)
	if err != nil {
		return err
	}
	cur := c.Lines[li]
	if col < 0 || col > len(cur) {
		return fmt.Errorf("split at column %d of line %d (length %d)", col, line, len(cur))
	}
	c.Lines = insertAt(c.Lines, li+1, cur[col:])
	c.Lines[li] = cur[:col]
	w.touch(c)
	return nil
}

// JoinNext appends the line below onto line and removes it, together with
// the carriage return of a CRLF break.
func (w *Window) JoinNext(line int) error {
	c, li, err := w.resolve(line)
	if err != nil {
		return err
	}
	next, ni, err := w.resolve(line + 1)
	if err != nil {
		return err
	}
	c.Lines[li] = strings.TrimSuffix(c.Lines[li], "\r") + next.Lines[ni]
	next.Lines = removeAt(next.Lines, ni)
	w.touch(c)
	w.touch(next)
	return nil
}

// InsertLines splices pieces into line at byte offset col: the first piece
// joins the text before col, the last piece joins the text after it, and any
// pieces between become new lines.
func (w *Window) InsertLines(line, col int, pieces []string) error {
	if len(pieces) == 0 {
		return nil
	}
	if len(pieces) == 1 {
		return w.InsertText(line, col, pieces[0])
	}
	c, li, err := w.resolve(line)
	if err != nil {
		return err
	}
	cur := c.Lines[li]
	if col < 0 || col > len(cur) {
		return fmt.Errorf("insert at column %d of line %d (length %d)", col, line, len(cur))
	}
	last := len(pieces) - 1
	added := make([]string, 0, len(pieces))
	added = append(added, cur[:col]+pieces[0])
	added = append(added, pieces[1:last]...)
	added = append(added, pieces[last]+cur[col:])

	lines := make([]string, 0, len(c.Lines)+last)
	lines = append(lines, c.Lines[:li]...)
	lines = append(lines, added...)
	lines = append(lines, c.Lines[li+1:]...)
	c.Lines = lines
	w.touch(c)
	return nil
}

// DeleteRange removes the text between two positions, joining the first and
// last line. start must not be after end.
func (w *Window) DeleteRange(start, end Pos) error {
	if end.Before(start) {
		start, end = end, start
	}
	first, err := w.Line(start.Line)
	if err != nil {
		return err
	}
	last, err := w.Line(end.Line)
	if err != nil {
		return err
	}
	if start.Col > len(first) || end.Col > len(last) {
		return fmt.Errorf("delete range %v..%v out of bounds", start, end)
	}
	// Remove whole lines below the start first so every lookup stays valid.
	for n := end.Line; n > start.Line; n-- {
		c, li, err := w.resolve(n)
		if err != nil {
			return err
		}
		c.Lines = removeAt(c.Lines, li)
		w.touch(c)
	}
	c, li, err := w.resolve(start.Line)
	if err != nil {
		return err
	}
	c.Lines[li] = first[:start.Col] + last[end.Col:]
	w.touch(c)
	return nil
}

// Text returns the lines between two positions joined with '\n'.
func (w *Window) Text(start, end Pos) (string, error) {
	if end.Before(start) {
		start, end = end, start
	}
	var b strings.Builder
	for n := start.Line; n <= end.Line; n++ {
		s, err := w.Line(n)
		if err != nil {
			return "", err
		}
		from, to := 0, len(s)
		if n == start.Line {
			from = min(start.Col, len(s))
		}
		if n == end.Line {
			to = min(end.Col, len(s))
		}
		if from > to {
			from = to
		}
		if n > start.Line {
			b.WriteByte('\n')
		}
		b.WriteString(s[from:to])
	}
	return b.String(), nil
}

// WriteTo writes every loaded line joined with '\n', followed by a final
// terminator when the file ended with one. A trailing empty line also gets
// one, ending like the line before it, so reading the output back yields the
// same number of lines. Call LoadAll first to write the whole file.
func (w *Window) WriteTo(out io.Writer) (int64, error) {
	var total int64
	write := func(s string) error {
		n, err := io.WriteString(out, s)
		total += int64(n)
		return err
	}
	count := 0
	var prev, last string
	for _, c := range w.chunks {
		for _, line := range c.Lines[:c.LineCount()] {
			if count > 0 {
				if err := write("\n"); err != nil {
					return total, err
				}
			}
			if err := write(line); err != nil {
				return total, err
			}
			prev, last = last, line
			count++
		}
	}
	if !w.AtTail() {
		return total, nil
	}
	switch {
	case w.FinalNewline():
		return total, write("\n")
	case count > 1 && last == "":
		return total, write(prev[contentEnd(prev):] + "\n")
	}
	return total, nil
}

func insertAt(lines []string, i int, s string) []string {
	lines = append(lines, "")
	copy(lines[i+1:], lines[i:])
	lines[i] = s
	return lines
}

func removeAt(lines []string, i int) []string {
	return append(lines[:i], lines[i+1:]...)
}
