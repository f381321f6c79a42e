package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/cache"
	"github.com/fhuszti/videos-ms-go/internal/config"
	"github.com/fhuszti/videos-ms-go/internal/db"
	"github.com/fhuszti/videos-ms-go/internal/handler/api"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/videos-ms-go/internal/middleware"
	"github.com/fhuszti/videos-ms-go/internal/notifier"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/videos-ms-go/internal/repository/postgres"
	"github.com/fhuszti/videos-ms-go/internal/session"
	"github.com/fhuszti/videos-ms-go/internal/spool"
	"github.com/fhuszti/videos-ms-go/internal/storage"
	"github.com/fhuszti/videos-ms-go/internal/task"
	videoSvc "github.com/fhuszti/videos-ms-go/internal/usecase/video"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	repo, database := initRecordStore(ctx, cfg)

	strg := initStorage(ctx, cfg)
	if err := strg.InitBucket(cfg.VideosBucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.VideosBucket, err)
		os.Exit(1)
	}

	sp, err := spool.NewOnDisk(cfg.SpoolDir)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize spool directory %q: %v", cfg.SpoolDir, err)
		os.Exit(1)
	}

	var store port.SessionStore
	var revocations port.RevocationList
	notifiers := notifier.Multi{notifier.NewLogNotifier()}
	if cfg.RedisAddr != "" {
		client := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		store = cache.NewRedisSessionStore(client)
		revocations = cache.NewRedisRevocationList(client)
		notifiers = append(notifiers, notifier.NewRedisNotifier(client))
		logger.Info(ctx, "✅  Redis session store enabled")
	} else {
		store = cache.NewMemorySessionStore()
		revocations = cache.NewMemoryRevocationList()
		logger.Warn(ctx, "⚠️  Redis not configured, upload sessions are kept in memory")
	}

	resetter := videoSvc.NewSessionResetter(store, cfg.UploadLockTTL)
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		dispatcher = task.NewLocalDispatcher(resetter)
	}

	observer := session.NewObserver(revocations)
	observer.Subscribe(videoSvc.NewSelectionReleaser(store, sp, cfg.UploadLockTTL))

	r := initRouter(ctx, cfg.JWTPublicKey)

	r.Get("/", api.HomeHandler(observer))
	r.Post("/auth/sign-out", api.SignOutHandler(observer))

	selectorSvc := videoSvc.NewFileSelector(observer, store, sp, cfg.UploadLockTTL)
	r.Post("/uploads/file", api.SelectFileHandler(selectorSvc))
	r.Delete("/uploads/file", api.ClearFileHandler(selectorSvc))

	r.Get("/uploads", api.GetUploadSessionHandler(videoSvc.NewSessionGetter(observer, store)))

	uploaderSvc := videoSvc.NewVideoUploader(videoSvc.UploaderDeps{
		Observer:   observer,
		Store:      store,
		Spool:      sp,
		Storage:    strg,
		Repo:       repo,
		Notifier:   notifiers,
		Dispatcher: dispatcher,
	}, videoSvc.UploaderConfig{
		Bucket:        cfg.VideosBucket,
		LockTTL:       cfg.UploadLockTTL,
		RedirectDelay: cfg.RedirectDelay,
	})
	r.Post("/uploads", api.SubmitUploadHandler(uploaderSvc))

	listenRouter(ctx, r, cfg, database)
}

func initRecordStore(ctx context.Context, cfg *config.Settings) (port.VideoUploadRepository, io.Closer) {
	logger.Info(ctx, "initialising database...")

	switch cfg.RecordStore {
	case config.RecordStorePostgres:
		pool, err := db.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to connect to postgres: %v", err)
			os.Exit(1)
		}
		return postgres.NewVideoUploadRepository(pool), closerFunc(pool.Close)
	default:
		database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
			os.Exit(1)
		}
		return mariadb.NewVideoUploadRepository(database.DB), database
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithBearerAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	if cfg.StorageBackend == config.StorageS3 {
		strg, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize S3 client: %v", err)
			os.Exit(1)
		}
		return strg
	}

	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database io.Closer) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
