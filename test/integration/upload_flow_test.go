package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/migration"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/test/testutil"
)

type uploadEnv struct {
	baseURL string
	issuer  *testutil.TokenIssuer
	testDB  *testutil.TestDB
}

func setupUploadEnv(t *testing.T, redirectDelay time.Duration) *uploadEnv {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	t.Cleanup(func() { _ = testDB.Cleanup() })
	if err := migration.MigrateUp(testDB.DB, migration.DialectMySQL); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cleanupBucket, err := testutil.ResetVideosBucket(GlobalMinioClient)
	if err != nil {
		t.Fatalf("reset bucket: %v", err)
	}
	t.Cleanup(func() { _ = cleanupBucket() })

	issuer := testutil.NewTokenIssuer(t)
	srv := testutil.StartServer(t, testutil.ServerDeps{
		DB:            testDB.DB,
		Storage:       GlobalStorage,
		PublicKeyPEM:  issuer.PublicPEM,
		RedirectDelay: redirectDelay,
	})

	return &uploadEnv{baseURL: srv.URL, issuer: issuer, testDB: testDB}
}

func (e *uploadEnv) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *uploadEnv) selectFile(t *testing.T, token, name, contentType string, data []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, e.baseURL+"/uploads/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(t, req, token)
}

func (e *uploadEnv) submit(t *testing.T, token string, form map[string]string) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(form)
	req, _ := http.NewRequest(http.MethodPost, e.baseURL+"/uploads", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req, token)
}

func (e *uploadEnv) session(t *testing.T, token string) model.UploadSession {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, e.baseURL+"/uploads", nil)
	resp := e.do(t, req, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /uploads: expected 200, got %d", resp.StatusCode)
	}
	var sess model.UploadSession
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sess
}

func TestUploadFlowIntegration(t *testing.T) {
	env := setupUploadEnv(t, 200*time.Millisecond)
	token := env.issuer.Sign(t, "user-42", "jane@example.com", "jti-flow")
	data := testutil.GenerateMP4(2048)

	resp := env.selectFile(t, token, "holiday.mp4", "video/mp4", data)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select file: expected 200, got %d", resp.StatusCode)
	}
	var selected model.SelectedFile
	if err := json.NewDecoder(resp.Body).Decode(&selected); err != nil {
		t.Fatalf("decode selected file: %v", err)
	}
	if selected.Name != "holiday.mp4" || selected.MimeType != "video/mp4" || selected.SizeBytes != int64(len(data)) {
		t.Errorf("unexpected selected file: %+v", selected)
	}

	resp = env.submit(t, token, map[string]string{
		"title":       "Summer holiday",
		"description": "Two weeks by the sea",
		"tags":        " beach, ,family ",
		"category":    "travel",
		"privacy":     "unlisted",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", resp.StatusCode)
	}
	var out port.SubmitUploadOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode submit output: %v", err)
	}
	if !strings.HasPrefix(out.FilePath, "user-42/") || !strings.HasSuffix(out.FilePath, ".mp4") {
		t.Errorf("unexpected file path %q", out.FilePath)
	}
	if out.RedirectTo != "/" || out.RedirectAfterMs != 200 {
		t.Errorf("unexpected redirect %q after %dms", out.RedirectTo, out.RedirectAfterMs)
	}
	if out.Notification.Title != "Upload successful!" {
		t.Errorf("unexpected notification %+v", out.Notification)
	}

	// the object landed in the bucket with its upload headers
	info, err := GlobalStorage.StatFile(context.Background(), testutil.VideosBucket, out.FilePath)
	if err != nil {
		t.Fatalf("stat uploaded object: %v", err)
	}
	if info.SizeBytes != int64(len(data)) {
		t.Errorf("object size = %d, want %d", info.SizeBytes, len(data))
	}
	if info.ContentType != "video/mp4" {
		t.Errorf("object content type = %q, want video/mp4", info.ContentType)
	}
	if info.CacheControl != "max-age=3600" {
		t.Errorf("object cache control = %q, want max-age=3600", info.CacheControl)
	}

	var (
		userID, title, privacy, filePath, mimeType string
		description, category                      *string
		tagsRaw                                    []byte
		fileSize                                   int64
	)
	err = env.testDB.DB.QueryRow(
		`SELECT user_id, title, description, tags, category, privacy, file_path, file_size, mime_type
		 FROM video_uploads WHERE id = ?`, out.RecordID,
	).Scan(&userID, &title, &description, &tagsRaw, &category, &privacy, &filePath, &fileSize, &mimeType)
	if err != nil {
		t.Fatalf("query record: %v", err)
	}
	if userID != "user-42" || title != "Summer holiday" || privacy != "unlisted" {
		t.Errorf("unexpected record user=%q title=%q privacy=%q", userID, title, privacy)
	}
	if description == nil || *description != "Two weeks by the sea" {
		t.Errorf("unexpected description %v", description)
	}
	if category == nil || *category != "travel" {
		t.Errorf("unexpected category %v", category)
	}
	if filePath != out.FilePath || fileSize != int64(len(data)) || mimeType != "video/mp4" {
		t.Errorf("unexpected file columns path=%q size=%d mime=%q", filePath, fileSize, mimeType)
	}
	var tags []string
	if err := json.Unmarshal(tagsRaw, &tags); err != nil {
		t.Fatalf("decode tags %q: %v", tagsRaw, err)
	}
	if len(tags) != 2 || tags[0] != "beach" || tags[1] != "family" {
		t.Errorf("unexpected tags %v", tags)
	}

	sess := env.session(t, token)
	if sess.State != model.UploadSucceeded || sess.Progress != 100 || sess.File != nil {
		t.Errorf("unexpected session right after upload: %+v", sess)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		sess = env.session(t, token)
		if sess.State == model.UploadIdle {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("session never reset, last state %q", sess.State)
		}
		time.Sleep(50 * time.Millisecond)
	}
	if sess.Progress != 0 || sess.File != nil {
		t.Errorf("unexpected session after reset: %+v", sess)
	}
}

func TestUploadRejectionsIntegration(t *testing.T) {
	env := setupUploadEnv(t, time.Second)
	token := env.issuer.Sign(t, "user-7", "sam@example.com", "jti-rejections")

	t.Run("anonymous submit", func(t *testing.T) {
		resp := env.submit(t, "", map[string]string{"title": "x"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "Please log in to upload videos" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := env.submit(t, "not-a-jwt", map[string]string{"title": "x"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("no file selected", func(t *testing.T) {
		resp := env.submit(t, token, map[string]string{"title": "Nothing"})
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", resp.StatusCode)
		}
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "No file selected" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("non-video file", func(t *testing.T) {
		resp := env.selectFile(t, token, "notes.txt", "text/plain", []byte("hello"))
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error != "Please select a valid video file" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		resp := env.selectFile(t, token, "clip.mp4", "video/mp4", testutil.GenerateMP4(512))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("select: expected 200, got %d", resp.StatusCode)
		}
		resp = env.submit(t, token, map[string]string{"title": ""})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		var fields map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&fields)
		if _, ok := fields["title"]; !ok {
			t.Errorf("expected a title error, got %v", fields)
		}
		// the selection survives a rejected form
		if sess := env.session(t, token); sess.File == nil || sess.File.Name != "clip.mp4" {
			t.Errorf("expected clip.mp4 to stay selected, got %+v", sess.File)
		}
	})

	t.Run("clear file", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, env.baseURL+"/uploads/file", nil)
		resp := env.do(t, req, token)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
		if sess := env.session(t, token); sess.File != nil {
			t.Errorf("expected no selection, got %+v", sess.File)
		}
	})

	var count int
	if err := env.testDB.DB.QueryRow("SELECT COUNT(*) FROM video_uploads").Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no records, got %d", count)
	}
}

func TestSignOutIntegration(t *testing.T) {
	env := setupUploadEnv(t, time.Second)
	token := env.issuer.Sign(t, "user-9", "kim@example.com", "jti-signout")

	resp := env.selectFile(t, token, "clip.webm", "video/webm", []byte("webm-bytes"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select: expected 200, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, env.baseURL+"/auth/sign-out", nil)
	resp = env.do(t, req, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign out: expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		RedirectTo string `json:"redirect_to"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.RedirectTo != "/auth" {
		t.Errorf("unexpected redirect %q", body.RedirectTo)
	}

	// the revoked token now reads as anonymous
	resp = env.submit(t, token, map[string]string{"title": "After sign out"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign out, got %d", resp.StatusCode)
	}

	// a fresh token for the same user finds the selection released
	fresh := env.issuer.Sign(t, "user-9", "kim@example.com", "jti-signout-2")
	if sess := env.session(t, fresh); sess.File != nil {
		t.Errorf("expected selection released on sign out, got %+v", sess.File)
	}
}
