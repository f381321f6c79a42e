package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/fhuszti/videos-ms-go/internal/mock"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/usecase/video"
)

func multipartRequest(t *testing.T, field, name, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/uploads/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSelectFileHandler(t *testing.T) {
	selected := &model.SelectedFile{Name: "clip.mp4", MimeType: "video/mp4", SizeBytes: 4, SpoolPath: "/user-1/x.mp4"}

	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		svcErr     error
		wantStatus int
		wantError  string
		wantCalled bool
	}{
		{
			name: "accepted",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "clip.mp4", "video/mp4", []byte("data"))
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/uploads/file", strings.NewReader("{}"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request",
		},
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "other", "clip.mp4", "video/mp4", []byte("data"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please select a valid video file",
		},
		{
			name: "rejected by selector",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "doc.pdf", "application/pdf", []byte("data"))
			},
			svcErr:     &video.ValidationError{Kind: video.NotAVideo, Message: "Please select a valid video file"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please select a valid video file",
			wantCalled: true,
		},
		{
			name: "upload in flight",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "clip.mp4", "video/mp4", []byte("data"))
			},
			svcErr:     video.ErrUploadInProgress,
			wantStatus: http.StatusConflict,
			wantError:  "An upload is already in progress",
			wantCalled: true,
		},
		{
			name: "anonymous",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "clip.mp4", "video/mp4", []byte("data"))
			},
			svcErr:     video.ErrAuthenticationRequired,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Please log in to upload videos",
			wantCalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.FileSelector{Out: selected, Err: tc.svcErr}
			rec := httptest.NewRecorder()

			SelectFileHandler(svc)(rec, tc.req(t))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body=%q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if svc.Called != tc.wantCalled {
				t.Errorf("service called = %v; want %v", svc.Called, tc.wantCalled)
			}

			if tc.wantError != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("error JSON: %v", err)
				}
				if resp.Error != tc.wantError {
					t.Errorf("error = %q; want %q", resp.Error, tc.wantError)
				}
				return
			}

			if svc.In.Name != "clip.mp4" || svc.In.MimeType != "video/mp4" || svc.In.Size != 4 || string(svc.Content) != "data" {
				t.Errorf("selector input = %+v content=%q", svc.In, svc.Content)
			}
			var got map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("JSON decode: %v", err)
			}
			if got["name"] != "clip.mp4" || got["mime_type"] != "video/mp4" {
				t.Errorf("response = %v", got)
			}
			if _, leaked := got["spool_path"]; leaked {
				t.Error("spool path must not be exposed")
			}
		})
	}
}

func TestSelectFileHandler_BodyTooLarge(t *testing.T) {
	svc := &mock.FileSelector{}
	content := bytes.Repeat([]byte{0}, video.MaxFileSize+2<<20)
	rec := httptest.NewRecorder()

	SelectFileHandler(svc)(rec, multipartRequest(t, "file", "big.mp4", "video/mp4", content))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Video file must be less than 50MB") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if svc.Called {
		t.Error("selector must not see an oversized body")
	}
}
