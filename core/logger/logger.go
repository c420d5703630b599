package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/m3rciful/paperbot/core/buildinfo"
	coreconfig "github.com/m3rciful/paperbot/core/config"
)

const (
	defaultSampleNum = 1
	defaultSampleDen = 50
	writerQueue      = 64 * 1024
)

var (
	mu          sync.Mutex
	initialized bool
	stopped     bool
	out         *asyncWriter
	files       []io.Closer

	level        slog.LevelVar
	debugSampler = newRatioSampler(defaultSampleNum, defaultSampleDen)
	traceAll     bool

	// L is the base logger. Prefer a component logger below.
	L *slog.Logger

	DB        *slog.Logger // database connection
	MIG       *slog.Logger // schema migrations
	TG        *slog.Logger // Telegram transport and handlers
	TWire     *slog.Logger // Telegram wiring
	Sender    *slog.Logger // outgoing message queue
	Catalog   *slog.Logger // catalog mutations and seeding
	Admin     *slog.Logger // admin actions
	Search    *slog.Logger // search queries
	Health    *slog.Logger // status server
	KeepAlive *slog.Logger // self-ping loop
)

func init() {
	// Component loggers write through the slog default until InitLogger runs,
	// so packages stay usable in tests.
	L = slog.Default()
	wireComponents()
}

// settings is the logging part of the config after defaults are applied.
type settings struct {
	level    slog.Level
	format   format
	num, den int
	file     string
}

func settingsFrom(cfg *coreconfig.Config) settings {
	s := settings{level: slog.LevelInfo, format: formatJSON, num: defaultSampleNum, den: defaultSampleDen}
	if cfg == nil {
		return s
	}
	lc := cfg.Logging
	if raw := strings.TrimSpace(lc.Level); raw != "" {
		if err := s.level.UnmarshalText([]byte(raw)); err != nil {
			s.level = slog.LevelInfo
		}
	}
	if strings.EqualFold(strings.TrimSpace(lc.Format), string(formatKV)) {
		s.format = formatKV
	}
	if raw := strings.TrimSpace(lc.DebugSample); raw != "" {
		num, den := parseRatioSpec(raw)
		if num > 0 && den > 0 || num == 0 && den == 0 {
			s.num, s.den = num, den
		}
	}
	s.file = strings.TrimSpace(lc.File)
	return s
}

// InitLogger installs the structured handler as the slog default and rebuilds
// the component loggers. Calls after the first are no-ops.
func InitLogger(cfg *coreconfig.Config) error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return nil
	}

	s := settingsFrom(cfg)
	sinks := []io.Writer{os.Stdout}
	if s.file != "" {
		f, err := openFile(s.file)
		if err != nil {
			return err
		}
		sinks = append(sinks, f)
		files = append(files, f)
	}

	level.Set(s.level)
	debugSampler.Set(s.num, s.den)
	traceAll = envFlag("LOG_TRACE") || envFlag("TRACE")

	out = newAsyncWriter(sinks, writerQueue)
	L = slog.New(newHandler(&level, out, s.format))
	slog.SetDefault(L)
	wireComponents()
	initialized = true

	L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
		slog.String("go_version", runtime.Version()),
		slog.String("bot", buildinfo.BotName),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("log_level", s.level.String()),
		slog.String("log_format", string(s.format)),
	)
	return nil
}

func openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}
	return f, nil
}

func wireComponents() {
	DB = Component("db")
	MIG = Component("db.migrate")
	TG = Component("tg")
	TWire = Component("tg.wire")
	Sender = Component("tg.sender")
	Catalog = Component("catalog")
	Admin = Component("admin")
	Search = Component("search")
	Health = Component("health")
	KeepAlive = Component("keepalive")
}

// Shutdown flushes buffered lines and closes the log file.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if stopped {
		return nil
	}
	stopped = true

	var errs []error
	if out != nil {
		errs = append(errs, out.Flush(), out.Close())
	}
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// Component returns L scoped to name.
func Component(name string) *slog.Logger {
	if name = strings.TrimSpace(name); name == "" {
		return L
	}
	return L.With("component", name)
}

// LogEvent writes one event line. A nil logg falls back to the logger in ctx.
func LogEvent(ctx context.Context, logg *slog.Logger, lvl slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, lvl, "", attrs...)
}

func Debug(ctx context.Context, logg *slog.Logger, event string, attrs ...slog.Attr) {
	LogEvent(ctx, logg, slog.LevelDebug, event, attrs...)
}

func Info(ctx context.Context, logg *slog.Logger, event string, attrs ...slog.Attr) {
	LogEvent(ctx, logg, slog.LevelInfo, event, attrs...)
}

func Warn(ctx context.Context, logg *slog.Logger, event string, attrs ...slog.Attr) {
	LogEvent(ctx, logg, slog.LevelWarn, event, attrs...)
}

func Error(ctx context.Context, logg *slog.Logger, event string, attrs ...slog.Attr) {
	LogEvent(ctx, logg, slog.LevelError, event, attrs...)
}

func envFlag(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ShouldSampleDebug reports whether a high-volume debug line should be
// written. LOG_TRACE=1 lets every line through.
func ShouldSampleDebug() bool {
	return traceAll || debugSampler.Allow()
}
