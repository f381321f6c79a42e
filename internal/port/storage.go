package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes    int64
	ContentType  string
	CacheControl string
}

// PutOptions controls how an object is written.
type PutOptions struct {
	ContentType  string
	CacheControl string
	// Overwrite false makes the write fail with storage.ErrObjectExists when the key is taken.
	Overwrite bool
}

// Storage defines object storage operations.
type Storage interface {
	InitBucket(bucket string) error
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts PutOptions) error
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
}
