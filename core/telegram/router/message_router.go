package router

import (
	"strings"

	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is the part of the session manager the text router needs.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions holds the handlers for messages nothing else claims.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownDocument tele.HandlerFunc
}

type textTarget struct {
	name string
	fn   tele.HandlerFunc
}

// TextRoutes routes plain text and documents. An open conversation receives
// the message first, except slash commands: those never become conversation
// input, and an unregistered one falls through to the unknown-text handler
// with the conversation left open.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	conversing := func(c tele.Context) bool {
		return fsmMgr != nil && c.Sender() != nil && fsmMgr.InProgress(c.Sender().ID)
	}

	pickText := func(c tele.Context) textTarget {
		text := c.Text()
		command := strings.HasPrefix(text, "/")
		if !command && conversing(c) {
			return textTarget{"fsm", fsmMgr.ManagerHandler}
		}
		if reg == nil {
			return textTarget{"unknown_text", opts.UnknownText}
		}
		// Admin-only commands are reachable only through their gated routes.
		if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil && !cmd.AdminOnly {
			return textTarget{handlerName(key), cmd.Handler}
		}
		return textTarget{"unknown_text", opts.UnknownText}
	}

	pickDocument := func(c tele.Context) textTarget {
		if conversing(c) {
			return textTarget{"fsm_document", fsmMgr.ManagerHandler}
		}
		return textTarget{"unexpected_document", opts.UnknownDocument}
	}

	route := func(endpoint string, pick func(tele.Context) textTarget) tg.Route {
		handler := func(c tele.Context) error {
			target := pick(c)
			s := newSummary(target.name)
			if target.fn == nil {
				s.skip(c)
				return nil
			}
			return s.run(c, target.fn)
		}
		return tg.Route{
			Endpoint: endpoint,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		}
	}

	return []tg.Route{
		route(tele.OnText, pickText),
		route(tele.OnDocument, pickDocument),
	}
}
