package editor

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Save writes the whole file, loading every chunk first so content outside
// the window is kept. The new content goes to a temporary file beside the
// target which then replaces it, and the window is rebuilt over the new
// file. Snapshots taken before the save keep paging from the old handle.
func (s *Session) Save() error {
	if s.path == "" {
		return errors.New("session has no path")
	}
	if err := s.win.LoadAll(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, s.win); err != nil {
		return &IOError{Op: "save", Chunk: -1, Err: err}
	}

	src, err := OpenFile(s.path)
	if err != nil {
		return err
	}
	s.handles = append(s.handles, src)
	win, err := LoadWindow(src, s.opts.ChunkSize, 0)
	if err != nil {
		return err
	}
	win.MaxChunks = s.opts.MaxChunks
	if err := win.LoadAll(); err != nil {
		return err
	}
	s.src = src
	s.win = win
	s.cur.FileLen = win.Loaded()
	s.crlf = detectCRLF(win, s.cur.FileLen)
	if err := s.cur.MoveTo(s.win, s.cur.Pos()); err != nil {
		return err
	}
	s.log.Printf("saved %s (%d lines, %d bytes)", s.path, s.cur.FileLen, src.Size())
	return s.settle()
}

func writeFileAtomic(path string, w *Window) (err error) {
	perm := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err = w.WriteTo(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
