package port

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// VideoUploadRepository persists upload records.
type VideoUploadRepository interface {
	Create(ctx context.Context, rec *model.UploadRecord) error
}
