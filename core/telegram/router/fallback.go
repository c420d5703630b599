package router

import (
	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// UpdateRoutes returns the callback route followed by the text routes. Updates
// claimed by neither the registry nor an active session go to fb.
func UpdateRoutes(reg *tg.Registry, sessions FSM, key func(*tele.Callback) string, fb ui.FallbackProvider) []tg.Route {
	routes := []tg.Route{CallbackRoute(reg, CallbackOptions{
		Key:      key,
		NotFound: fb.UnknownCallback(),
	})}
	return append(routes, TextRoutes(sessions, reg, TextOptions{
		UnknownText:     fb.UnknownText(),
		UnknownDocument: fb.UnknownDocument(),
	})...)
}
