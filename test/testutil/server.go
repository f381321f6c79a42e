package testutil

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/cache"
	"github.com/fhuszti/videos-ms-go/internal/handler/api"
	cMiddleware "github.com/fhuszti/videos-ms-go/internal/middleware"
	"github.com/fhuszti/videos-ms-go/internal/notifier"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/videos-ms-go/internal/session"
	"github.com/fhuszti/videos-ms-go/internal/spool"
	"github.com/fhuszti/videos-ms-go/internal/task"
	videoSvc "github.com/fhuszti/videos-ms-go/internal/usecase/video"
	"github.com/go-chi/chi/v5"
)

// ServerDeps are the backends an API test server runs against.
type ServerDeps struct {
	DB            *sql.DB
	Storage       port.Storage
	Store         port.SessionStore
	Revocations   port.RevocationList
	Dispatcher    port.TaskDispatcher
	PublicKeyPEM  string
	RedirectDelay time.Duration
}

// StartServer wires the upload API the way cmd/api does, with an on-disk
// spool in a temp dir. Missing stores default to the in-memory ones.
func StartServer(t *testing.T, deps ServerDeps) *httptest.Server {
	t.Helper()

	if deps.Store == nil {
		deps.Store = cache.NewMemorySessionStore()
	}
	if deps.Revocations == nil {
		deps.Revocations = cache.NewMemoryRevocationList()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = task.NewLocalDispatcher(videoSvc.NewSessionResetter(deps.Store, time.Minute))
	}

	sp, err := spool.NewOnDisk(t.TempDir())
	if err != nil {
		t.Fatalf("spool: %v", err)
	}

	observer := session.NewObserver(deps.Revocations)
	observer.Subscribe(videoSvc.NewSelectionReleaser(deps.Store, sp, time.Minute))

	r := chi.NewRouter()
	r.Use(cMiddleware.WithBearerAuth(deps.PublicKeyPEM))
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Get("/", api.HomeHandler(observer))
	r.Post("/auth/sign-out", api.SignOutHandler(observer))

	selector := videoSvc.NewFileSelector(observer, deps.Store, sp, time.Minute)
	r.Post("/uploads/file", api.SelectFileHandler(selector))
	r.Delete("/uploads/file", api.ClearFileHandler(selector))
	r.Get("/uploads", api.GetUploadSessionHandler(videoSvc.NewSessionGetter(observer, deps.Store)))

	uploader := videoSvc.NewVideoUploader(videoSvc.UploaderDeps{
		Observer:   observer,
		Store:      deps.Store,
		Spool:      sp,
		Storage:    deps.Storage,
		Repo:       mariadb.NewVideoUploadRepository(deps.DB),
		Notifier:   notifier.NewLogNotifier(),
		Dispatcher: deps.Dispatcher,
	}, videoSvc.UploaderConfig{
		Bucket:        VideosBucket,
		LockTTL:       time.Minute,
		RedirectDelay: deps.RedirectDelay,
	})
	r.Post("/uploads", api.SubmitUploadHandler(uploader))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
