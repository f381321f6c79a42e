package mock

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Spool keeps spooled files in memory.
type Spool struct {
	Files   map[string][]byte
	Removed []string

	WriteErr  error
	OpenErr   error
	RemoveErr error

	WriteCalled bool
	seq         int
}

func NewSpool() *Spool {
	return &Spool{Files: map[string][]byte{}}
}

func (m *Spool) Write(userID, name string, r io.Reader) (string, int64, error) {
	m.WriteCalled = true
	if m.WriteErr != nil {
		return "", 0, m.WriteErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	m.seq++
	path := fmt.Sprintf("/%s/%d-%s", userID, m.seq, name)
	m.Files[path] = data
	return path, int64(len(data)), nil
}

func (m *Spool) Open(path string) (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, errors.New("spool file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Spool) Remove(path string) error {
	m.Removed = append(m.Removed, path)
	delete(m.Files, path)
	return m.RemoveErr
}
