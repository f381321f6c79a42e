package spool

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestSpool_WriteOpenRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs)

	path, n, err := s.Write("user-1", "holiday.final.mp4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != int64(len("video-bytes")) {
		t.Errorf("size = %d; want %d", n, len("video-bytes"))
	}
	if filepath.Dir(path) != "/user-1" || filepath.Ext(path) != ".mp4" {
		t.Errorf("unexpected path %q", path)
	}

	rc, err := s.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "video-bytes" {
		t.Errorf("content = %q", data)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := afero.Exists(fs, path); ok {
		t.Error("file still exists after Remove")
	}
	if err := s.Remove(path); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
	if err := s.Remove(""); err != nil {
		t.Errorf("Remove(\"\") = %v", err)
	}
}

func TestSpool_WriteDistinctPaths(t *testing.T) {
	s := New(afero.NewMemMapFs())
	p1, _, _ := s.Write("u", "a.mp4", strings.NewReader("1"))
	p2, _, _ := s.Write("u", "a.mp4", strings.NewReader("2"))
	if p1 == p2 {
		t.Fatal("two writes of the same name must not collide")
	}
}

func TestSpool_WriteUserIDCannotEscape(t *testing.T) {
	s := New(afero.NewMemMapFs())
	path, _, err := s.Write("../../etc", "x.mp4", strings.NewReader("1"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Dir(path) != "/etc" {
		t.Errorf("path escaped the spool: %q", path)
	}
}

func TestSpool_WriteFailureCleansUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs)

	if _, _, err := s.Write("u", "a.mp4", failingReader{}); err == nil {
		t.Fatal("expected error")
	}
	entries, _ := afero.ReadDir(fs, "/u")
	if len(entries) != 0 {
		t.Errorf("partial spool file left behind: %d entries", len(entries))
	}
}

func TestNewOnDisk(t *testing.T) {
	s, err := NewOnDisk(filepath.Join(t.TempDir(), "spool"))
	if err != nil {
		t.Fatalf("NewOnDisk: %v", err)
	}
	path, _, err := s.Write("u", "clip.webm", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

func TestSpool_Sweep(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs)

	oldPath, _, err := s.Write("user-1", "old.mp4", strings.NewReader("old"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	freshPath, _, err := s.Write("user-2", "fresh.mp4", strings.NewReader("fresh"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	longAgo := time.Now().Add(-72 * time.Hour)
	if err := fs.Chtimes(oldPath, longAgo, longAgo); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	n, err := s.Sweep(time.Now().Add(-48 * time.Hour))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("removed = %d; want 1", n)
	}
	if ok, _ := afero.Exists(fs, oldPath); ok {
		t.Error("stale file should be removed")
	}
	if ok, _ := afero.Exists(fs, "/user-1"); ok {
		t.Error("empty user dir should be removed")
	}
	if ok, _ := afero.Exists(fs, freshPath); !ok {
		t.Error("fresh file must be kept")
	}
}
