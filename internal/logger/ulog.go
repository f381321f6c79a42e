package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fhuszti/videos-ms-go/internal/api_context"
)

const serviceName = "videos-ms"

var std *slog.Logger

// identityHandler appends the caller's uid (or "system") to every record.
type identityHandler struct{ h slog.Handler }

func (i identityHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return i.h.Enabled(ctx, lvl)
}

func (i identityHandler) Handle(ctx context.Context, r slog.Record) error {
	uid, ok := api_context.AuthUserIDFromContext(ctx)
	if !ok {
		uid = "system"
	}
	r.AddAttrs(slog.String("uid", uid))
	return i.h.Handle(ctx, r)
}

func (i identityHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return identityHandler{h: i.h.WithAttrs(a)}
}

func (i identityHandler) WithGroup(n string) slog.Handler {
	return identityHandler{h: i.h.WithGroup(n)}
}

// Options drives the construction of the service logger.
type Options struct {
	Format    string // json|text
	Level     string // debug|info|warn|error
	AddSource bool
}

// OptionsFromEnv reads LOG_FORMAT, LOG_LEVEL and LOG_SOURCE.
func OptionsFromEnv() Options {
	return Options{
		Format:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		Level:     getEnv("LOG_LEVEL", "info"),
		AddSource: parseBool(getEnv("LOG_SOURCE", "false")),
	}
}

// New builds a logger writing to w. Records carry svc then uid.
func New(w io.Writer, o Options) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(o.Level), AddSource: o.AddSource}

	var base slog.Handler
	if o.Format == "text" {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}

	return slog.New(identityHandler{h: base}).With("svc", serviceName)
}

// Init installs the env-configured logger as the process default and routes
// the standard library log package through it.
func Init() {
	std = New(os.Stdout, OptionsFromEnv())
	slog.SetDefault(std)

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(std.Handler(), slog.LevelInfo).Writer())
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func activeLogger() *slog.Logger {
	if std != nil {
		return std
	}
	return slog.Default()
}

func Info(ctx context.Context, msg string, attrs ...any) {
	activeLogger().InfoContext(ctx, msg, attrs...)
}
func Warn(ctx context.Context, msg string, attrs ...any) {
	activeLogger().WarnContext(ctx, msg, attrs...)
}
func Error(ctx context.Context, msg string, attrs ...any) {
	activeLogger().ErrorContext(ctx, msg, attrs...)
}
func Debug(ctx context.Context, msg string, attrs ...any) {
	activeLogger().DebugContext(ctx, msg, attrs...)
}

func Infof(ctx context.Context, format string, a ...any) {
	activeLogger().InfoContext(ctx, fmt.Sprintf(format, a...))
}
func Errorf(ctx context.Context, format string, a ...any) {
	activeLogger().ErrorContext(ctx, fmt.Sprintf(format, a...))
}
func Warnf(ctx context.Context, format string, a ...any) {
	activeLogger().WarnContext(ctx, fmt.Sprintf(format, a...))
}
func Debugf(ctx context.Context, format string, a ...any) {
	activeLogger().DebugContext(ctx, fmt.Sprintf(format, a...))
}
