package video

import (
	"strings"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// MetadataForm is the submitted form as received over the wire.
type MetadataForm struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=5000"`
	Tags        string `json:"tags"`
	Category    string `json:"category" validate:"omitempty,category"`
	Privacy     string `json:"privacy" validate:"omitempty,privacy"`
}

// Normalize trims the enumerated fields so padded choices validate.
func (f *MetadataForm) Normalize() {
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.Privacy = strings.ToLower(strings.TrimSpace(f.Privacy))
}

// Metadata returns the validated metadata, defaulting privacy to private.
func (f MetadataForm) Metadata() model.VideoMetadata {
	privacy := model.Privacy(f.Privacy)
	if privacy == "" {
		privacy = model.PrivacyPrivate
	}
	return model.VideoMetadata{
		Title:       f.Title,
		Description: f.Description,
		Tags:        f.Tags,
		Category:    model.Category(f.Category),
		Privacy:     privacy,
	}
}
