package video

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want model.Tags
	}{
		{"", model.Tags{}},
		{"   ", model.Tags{}},
		{",,,", model.Tags{}},
		{"go", model.Tags{"go"}},
		{" a, ,b ,, c", model.Tags{"a", "b", "c"}},
		{"multi word, tag", model.Tags{"multi word", "tag"}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseTags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseTags(%q) = %#v; want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTags_Reparse(t *testing.T) {
	inputs := []string{"", ",,", "a, b ,,c", " x ,y,", "solo", " spaced words , more "}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := ParseTags(in)
			twice := ParseTags(strings.Join(once, ","))
			if !reflect.DeepEqual(twice, once) {
				t.Errorf("ParseTags(join(ParseTags(%q))) = %#v; want %#v", in, twice, once)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(1712345678901)
	tests := []struct {
		name string
		file string
		want string
	}{
		{"simple", "clip.mp4", "u/1712345678901.mp4"},
		{"last dot wins", "my.holiday.video.webm", "u/1712345678901.webm"},
		{"no extension", "clip", "u/1712345678901."},
		{"trailing dot", "clip.", "u/1712345678901."},
		{"dotfile", ".hidden", "u/1712345678901.hidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ObjectKey("u", at, tc.file); got != tc.want {
				t.Errorf("ObjectKey(%q) = %q; want %q", tc.file, got, tc.want)
			}
		})
	}
}

func TestMetadataForm_Metadata(t *testing.T) {
	got := MetadataForm{Title: "t", Category: "music"}.Metadata()
	if got.Privacy != model.PrivacyPrivate {
		t.Errorf("privacy default = %q; want private", got.Privacy)
	}
	if got.Category != "music" {
		t.Errorf("category = %q", got.Category)
	}

	got = MetadataForm{Title: "t", Privacy: "public"}.Metadata()
	if got.Privacy != model.PrivacyPublic {
		t.Errorf("privacy = %q; want public", got.Privacy)
	}
}

func TestMetadataForm_Normalize(t *testing.T) {
	form := MetadataForm{Title: " t ", Category: " Music ", Privacy: " unlisted\t"}
	form.Normalize()

	if form.Category != "music" || form.Privacy != "unlisted" {
		t.Errorf("normalized category=%q privacy=%q", form.Category, form.Privacy)
	}
	if form.Title != " t " {
		t.Errorf("title must be left as typed, got %q", form.Title)
	}
	if got := form.Metadata(); got.Privacy != model.PrivacyUnlisted {
		t.Errorf("privacy = %q; want unlisted", got.Privacy)
	}
}

func TestUploadError(t *testing.T) {
	inner := &UploadError{Kind: StorageWriteFailed, Err: nil}
	if inner.UserMessage() != "An error occurred during upload" {
		t.Errorf("fallback = %q", inner.UserMessage())
	}
	if _, ok := AsUploadError(nil); ok {
		t.Error("nil is not an upload error")
	}
}

func TestNotificationFor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantOK    bool
	}{
		{"auth", ErrAuthenticationRequired, "Authentication required", true},
		{"no file", ErrNoFileSelected, "No file selected", true},
		{"upload error", &UploadError{Kind: StorageWriteFailed, Err: errors.New("x")}, "Upload failed", true},
		{"busy", ErrUploadInProgress, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := NotificationFor(tc.err)
			if ok != tc.wantOK || n.Title != tc.wantTitle {
				t.Errorf("NotificationFor(%v) = (%+v, %v)", tc.err, n, ok)
			}
		})
	}
}
