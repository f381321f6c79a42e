package spool

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
	"github.com/spf13/afero"
)

// Spool stores selected files on an afero filesystem, one directory per user.
type Spool struct {
	fs afero.Fs
}

// compile-time check: *Spool must satisfy port.Spool
var _ port.Spool = (*Spool)(nil)

func New(fs afero.Fs) *Spool {
	return &Spool{fs: fs}
}

// NewOnDisk roots the spool at dir on the OS filesystem.
func NewOnDisk(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// Write copies r into a new spool file. The original name only contributes
// its extension; the path itself is random.
func (s *Spool) Write(userID, name string, r io.Reader) (string, int64, error) {
	dir := filepath.Join("/", filepath.Base(userID))
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return "", 0, fmt.Errorf("create user spool dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewUUID().String()+filepath.Ext(name))
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", 0, fmt.Errorf("create spool file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = s.fs.Remove(path)
		return "", 0, fmt.Errorf("write spool file: %w", err)
	}

	log.Printf("spooled %d bytes for user %q at %q", n, userID, path)
	return path, n, nil
}

func (s *Spool) Open(path string) (io.ReadCloser, error) {
	return s.fs.Open(path)
}

// Remove deletes a spooled file. Missing files are not an error.
func (s *Spool) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Sweep removes spooled files last written before cutoff, along with user
// directories left empty. It returns the number of files removed.
func (s *Spool) Sweep(cutoff time.Time) (int, error) {
	var stale, dirs []string
	err := afero.Walk(s.fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != "/" {
				dirs = append(dirs, path)
			}
			return nil
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk spool: %w", err)
	}

	removed := 0
	for _, path := range stale {
		if err := s.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %q: %w", path, err)
		}
		removed++
	}

	for _, dir := range dirs {
		if empty, err := afero.IsEmpty(s.fs, dir); err == nil && empty {
			_ = s.fs.Remove(dir)
		}
	}
	return removed, nil
}
