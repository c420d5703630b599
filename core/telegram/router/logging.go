package router

import (
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/m3rciful/paperbot/core/logger"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"
	"github.com/m3rciful/paperbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// Observer receives one call per handled update.
type Observer interface {
	ObserveHandler(handler, status string, d time.Duration)
}

type observerBox struct{ Observer }

var observer atomic.Pointer[observerBox]

// SetObserver installs the handler observer. Passing nil removes it.
func SetObserver(o Observer) {
	if o == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&observerBox{o})
}

// summary is the handler.handled line written once per routed update. It
// reports how many messages the handler sent or edited and whether any of
// them carried a keyboard.
type summary struct {
	name   string
	start  time.Time
	status string
	attrs  []slog.Attr
}

func newSummary(name string, attrs ...slog.Attr) *summary {
	return &summary{name: name, start: time.Now(), attrs: attrs}
}

// run names the handler in the update context, calls fn and logs the result.
func (s *summary) run(c tele.Context, fn tele.HandlerFunc) error {
	tghelpers.WithHandler(c, s.name)
	err := fn(c)
	s.log(c, err)
	return err
}

// skip logs an update that no handler took.
func (s *summary) skip(c tele.Context) {
	s.status = "skip"
	s.log(c, nil)
}

func (s *summary) log(c tele.Context, err error) {
	status, outcome := "ok", "ok"
	if err != nil {
		status, outcome = "fail", "fail"
	}
	if s.status != "" {
		status = s.status
	}
	took := time.Since(s.start)
	if box := observer.Load(); box != nil {
		box.ObserveHandler(s.name, status, took)
	}

	counters := tghelpers.CountersFrom(c)
	attrs := append([]slog.Attr{
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", counters.Messages()),
		slog.Bool("kb", counters.Keyboard()),
		slog.Duration("duration", took),
	}, s.attrs...)
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			// Most handler failures are Bot API calls.
			slog.String("err_code", sender.Classify(err)),
		)
	}
	logger.LogEvent(tghelpers.WithHandler(c, s.name), logger.TG, slog.LevelInfo, "handler.handled", attrs...)
}

// handlerName turns a command or callback key into a metric-safe label.
func handlerName(key string) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(key, " ", "_"))
}
