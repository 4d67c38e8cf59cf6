package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Chunk is one fixed-size byte range of the backing file parsed into lines.
//
// A logical line belongs to the chunk that holds its terminating '\n', or to
// the last chunk for the final line of the file. The first line of a chunk
// therefore already carries any bytes of that line that live in earlier
// chunks. A chunk that does not end on a terminator (and is not the last
// chunk) keeps the start of the next chunk's first line as a partial last
// line; the owning Window drops it once the successor is loaded.
type Chunk struct {
	Index int
	Lines []string

	// Terminated reports whether the raw byte range ended exactly on '\n'.
	Terminated bool
	// EOF reports whether the byte range reaches the end of the file.
	EOF bool

	partial bool
	dirty   bool
}

// ChunkCount returns the number of chunks a source of size bytes is split
// into. An empty source still has one (empty) chunk.
func ChunkCount(size int64, chunkSize int) int {
	if size <= 0 {
		return 1
	}
	n := size / int64(chunkSize)
	if size%int64(chunkSize) != 0 {
		n++
	}
	return int(n)
}

// LoadChunk reads chunk index of src and parses it into lines, stitching the
// incomplete line that started in earlier chunks onto its first line.
func LoadChunk(src Source, index, size int) (*Chunk, error) {
	if index < 0 || index >= ChunkCount(src.Size(), size) {
		return nil, &IOError{Op: "load", Chunk: index, Err: fmt.Errorf("chunk out of range")}
	}
	raw, err := readChunk(src, index, size)
	if err != nil {
		return nil, err
	}
	prefix, err := carriedPrefix(src, index, size)
	if err != nil {
		return nil, err
	}

	c := &Chunk{
		Index:      index,
		EOF:        int64(index+1)*int64(size) >= src.Size(),
		Terminated: len(raw) > 0 && raw[len(raw)-1] == '\n',
	}

	body := string(prefix) + string(raw)
	c.Lines = strings.Split(body, "\n")
	if c.Terminated {
		c.Lines = c.Lines[:len(c.Lines)-1]
	}
	c.partial = !c.Terminated && !c.EOF

	for i, line := range c.Lines[:c.LineCount()] {
		if !utf8.ValidString(line) {
			return nil, &DecodeError{Chunk: index, Line: i}
		}
	}
	return c, nil
}

// LineCount returns the number of complete lines the chunk owns.
func (c *Chunk) LineCount() int {
	if c.partial {
		return len(c.Lines) - 1
	}
	return len(c.Lines)
}

// Dirty reports whether the chunk's lines were edited in memory.
func (c *Chunk) Dirty() bool { return c.dirty }

func (c *Chunk) clone() *Chunk {
	cp := *c
	cp.Lines = make([]string, len(c.Lines))
	copy(cp.Lines, c.Lines)
	return &cp
}

// dropPartial removes the partial last line once the successor chunk, which
// carries the whole line, is part of the same window.
func (c *Chunk) dropPartial() {
	if !c.partial {
		return
	}
	c.Lines = c.Lines[:len(c.Lines)-1]
	c.partial = false
}

// readChunk reads the raw bytes of chunk index. A read that hits end of file
// early returns the bytes that were available.
func readChunk(src Source, index, size int) ([]byte, error) {
	off := int64(index) * int64(size)
	total := src.Size()
	if off >= total {
		return nil, nil
	}
	n := int64(size)
	if off+n > total {
		n = total - off
	}
	buf := make([]byte, n)
	read, err := src.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &IOError{Op: "read", Chunk: index, Err: err}
	}
	return buf[:read], nil
}

// carriedPrefix returns the bytes of the line that is still open at the start
// of chunk index, walking back over chunks that contain no terminator.
func carriedPrefix(src Source, index, size int) ([]byte, error) {
	var parts [][]byte
	for k := index - 1; k >= 0; k-- {
		raw, err := readChunk(src, k, size)
		if err != nil {
			return nil, err
		}
		if i := bytes.LastIndexByte(raw, '\n'); i >= 0 {
			parts = append(parts, raw[i+1:])
			break
		}
		parts = append(parts, raw)
	}
	if len(parts) == 0 {
		return nil, nil
	}
	var out []byte
	for i := len(parts) - 1; i >= 0; i-- {
		out = append(out, parts[i]...)
	}
	return out, nil
}

// countTerminators returns the number of '\n' bytes stored before chunk index,
// which equals the number of lines owned by chunks 0..index-1.
func countTerminators(src Source, index, size int) (int, error) {
	n := 0
	for k := 0; k < index; k++ {
		raw, err := readChunk(src, k, size)
		if err != nil {
			return 0, err
		}
		n += bytes.Count(raw, []byte{'\n'})
	}
	return n, nil
}
