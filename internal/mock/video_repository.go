package mock

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// VideoUploadRepository implements port.VideoUploadRepository for tests.
type VideoUploadRepository struct {
	Created      *model.UploadRecord
	CreateErr    error
	CreateCalled bool
}

func (m *VideoUploadRepository) Create(ctx context.Context, rec *model.UploadRecord) error {
	m.CreateCalled = true
	m.Created = rec
	return m.CreateErr
}
