package video

import (
	"context"
	"testing"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/mock"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
)

const testUser = "user-1"

var fixedNow = time.UnixMilli(1700000000123)

type fixture struct {
	observer   *mock.SessionObserver
	store      *mock.SessionStore
	spool      *mock.Spool
	storage    *mock.Storage
	repo       *mock.VideoUploadRepository
	notifier   *mock.Notifier
	dispatcher *mock.TaskDispatcher
	id         uuid.UUID
}

func newFixture() *fixture {
	return &fixture{
		observer:   &mock.SessionObserver{Identity: &model.Identity{ID: testUser, Email: "u@example.com"}},
		store:      mock.NewSessionStore(),
		spool:      mock.NewSpool(),
		storage:    &mock.Storage{},
		repo:       &mock.VideoUploadRepository{},
		notifier:   &mock.Notifier{},
		dispatcher: &mock.TaskDispatcher{},
		id:         uuid.NewUUID(),
	}
}

func (f *fixture) uploader() port.VideoUploader {
	return NewVideoUploader(UploaderDeps{
		Observer:   f.observer,
		Store:      f.store,
		Spool:      f.spool,
		Storage:    f.storage,
		Repo:       f.repo,
		Notifier:   f.notifier,
		Dispatcher: f.dispatcher,
		NewID:      func() uuid.UUID { return f.id },
		Now:        func() time.Time { return fixedNow },
	}, UploaderConfig{Bucket: "videos", LockTTL: time.Minute, RedirectDelay: 1500 * time.Millisecond})
}

func (f *fixture) selector() port.FileSelector {
	return NewFileSelector(f.observer, f.store, f.spool, time.Minute)
}

// selectFile seeds a selected file directly into the store and spool.
func (f *fixture) selectFile(t *testing.T, name, mimeType, content string) model.SelectedFile {
	t.Helper()
	path := "/" + testUser + "/seeded-" + name
	f.spool.Files[path] = []byte(content)
	file := model.SelectedFile{Name: name, MimeType: mimeType, SizeBytes: int64(len(content)), SpoolPath: path}
	s := model.NewUploadSession(testUser)
	s.File = &file
	f.store.Put(*s)
	return file
}

func (f *fixture) session(t *testing.T) *model.UploadSession {
	t.Helper()
	s, err := f.store.Get(context.Background(), testUser)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	return s
}
