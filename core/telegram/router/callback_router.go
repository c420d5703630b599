package router

import (
	"log/slog"

	tg "github.com/m3rciful/paperbot/core/telegram"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"
	"github.com/m3rciful/paperbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises key extraction and the unknown-key handler.
type CallbackOptions struct {
	// Key maps a callback to its registry key. Defaults to the telebot
	// "\f<unique>|<payload>" convention.
	Key func(cb *tele.Callback) string
	// NotFound runs for unknown keys when the registry has no handler of its
	// own for them.
	NotFound tele.HandlerFunc
}

// CallbackRoute dispatches button presses by key. The callback query is
// always answered, by the handler or with an empty answer afterwards, so the
// client stops its spinner.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	keyOf := opts.Key
	if keyOf == nil {
		keyOf = func(cb *tele.Callback) string {
			key, _ := middleware.ParseCallback(cb)
			return key
		}
	}

	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		defer func() {
			if !tghelpers.Answered(c) {
				_ = c.Respond()
			}
		}()

		key := keyOf(cb)
		s := newSummary("callback."+handlerName(key), slog.String("cb_key", key))
		if h, ok := reg.GetCallback(key); ok && h != nil {
			return s.run(c, h)
		}

		s.attrs = append(s.attrs, slog.String("reason", "not_found"), slog.String("payload", cb.Data))
		notFound := reg.CallbackNotFound()
		if notFound == nil {
			notFound = opts.NotFound
		}
		if notFound == nil {
			s.skip(c)
			return nil
		}
		return s.run(c, notFound)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
