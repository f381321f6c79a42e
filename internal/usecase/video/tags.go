package video

import (
	"strings"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// ParseTags splits comma separated text into trimmed, non-empty tags.
func ParseTags(raw string) model.Tags {
	tags := model.Tags{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
