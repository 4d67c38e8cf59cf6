package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrLineNotLoaded is returned when an operation addresses a line that is
	// outside the currently loaded window.
	ErrLineNotLoaded = errors.New("line not loaded")

	// ErrUnsupportedEncoding is returned when a chunk contains bytes that are
	// not valid UTF-8.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// LineNotLoadedError reports the absolute line a window lookup missed.
type LineNotLoadedError struct {
	Line       int
	Head, Tail int
}

func (e *LineNotLoadedError) Error() string {
	return fmt.Sprintf("line %d not loaded (window chunks %d..%d)", e.Line, e.Head, e.Tail)
}

func (e *LineNotLoadedError) Unwrap() error { return ErrLineNotLoaded }

// DecodeError reports invalid UTF-8 inside a chunk.
type DecodeError struct {
	Chunk int
	Line  int // chunk-local line index
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("chunk %d line %d: %v", e.Chunk, e.Line, ErrUnsupportedEncoding)
}

func (e *DecodeError) Unwrap() error { return ErrUnsupportedEncoding }

// IOError wraps a failure reading or writing the backing file.
type IOError struct {
	Op    string
	Chunk int
	Err   error
}

func (e *IOError) Error() string {
	if e.Chunk < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s chunk %d: %v", e.Op, e.Chunk, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIO reports whether err stems from the backing file.
func IsIO(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
