package editor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// DefaultChunkSize is the number of file bytes paged in per chunk.
const DefaultChunkSize = 5120

// Source is the random-access backing store a Window pages chunks from.
// *bytes.Reader and *strings.Reader satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// FileSource is a Source over an open file. The size is fixed at open time;
// the file is only ever replaced wholesale by Save.
type FileSource struct {
	f    *os.File
	path string
	size int64
}

// OpenFile opens path for paging. A missing file is treated as empty so new
// files can be created by saving.
func OpenFile(path string) (*FileSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "open", Chunk: -1, Err: err}
	}
	f, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return &FileSource{path: absPath}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "open", Chunk: -1, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IOError{Op: "stat", Chunk: -1, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &IOError{Op: "open", Chunk: -1, Err: errors.New(absPath + " is a directory")}
	}
	return &FileSource{f: f, path: absPath, size: info.Size()}, nil
}

// ReadAt implements io.ReaderAt.
func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	if s.f == nil {
		return 0, io.EOF
	}
	return s.f.ReadAt(p, off)
}

// Size returns the file size observed when the file was opened.
func (s *FileSource) Size() int64 { return s.size }

// Path returns the absolute file path.
func (s *FileSource) Path() string { return s.path }

// Close releases the file handle.
func (s *FileSource) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
