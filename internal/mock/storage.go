package mock

import (
	"context"
	"io"

	"github.com/fhuszti/videos-ms-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo

	// captured inputs
	Bucket    string
	ObjectKey string
	Body      []byte
	Size      int64
	Opts      port.PutOptions

	// errors
	InitBucketErr error
	StatErr       error
	SaveErr       error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	SaveCalled       bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts port.PutOptions) error {
	m.SaveCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.Size = fileSize
	m.Opts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.Body = body
	return nil
}
