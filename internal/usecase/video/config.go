package video

import (
	"strings"
	"time"
)

const (
	MaxFileSize = 50 * 1024 * 1024 // 50 MB

	DefaultBucket        = "videos"
	CacheControl         = "max-age=3600"
	RedirectTo           = "/"
	DefaultRedirectDelay = 1500 * time.Millisecond
	DefaultLockTTL       = 10 * time.Minute
)

// IsVideo reports whether the declared MIME type is in the video/* family.
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "video/")
}
