package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/uuid"
)

type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
)

var Privacies = []Privacy{PrivacyPublic, PrivacyPrivate, PrivacyUnlisted}

func (p Privacy) Valid() bool {
	for _, v := range Privacies {
		if p == v {
			return true
		}
	}
	return false
}

type Category string

var Categories = []Category{
	"education",
	"entertainment",
	"gaming",
	"howto",
	"music",
	"news",
	"sports",
	"technology",
	"travel",
	"other",
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// VideoMetadata is the user-entered description of a video. Tags is the raw
// comma separated text as typed.
type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        string   `json:"tags"`
	Category    Category `json:"category"`
	Privacy     Privacy  `json:"privacy"`
}

// Tags is stored as a JSON array in MariaDB and as TEXT[] in Postgres.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("marshal Tags: %w", err)
	}
	return b, nil
}

func (t *Tags) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Tags.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, (*[]string)(t)); err != nil {
		return fmt.Errorf("unmarshal Tags: %w", err)
	}
	return nil
}

// UploadRecord is the row persisted in video_uploads for each completed upload.
type UploadRecord struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Tags        Tags      `json:"tags"`
	Category    *Category `json:"category"`
	Privacy     Privacy   `json:"privacy"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
}
