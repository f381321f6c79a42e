package port

import "io"

// Spool holds selected files until they are uploaded or discarded.
type Spool interface {
	Write(userID, name string, r io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}
