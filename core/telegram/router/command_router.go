package router

import (
	"context"
	"log/slog"

	"github.com/m3rciful/paperbot/core/logger"
	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures the admin gate in front of admin-only
// commands.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes returns one route per registered command. Admin-only commands
// reject everyone except AdminID before their handler runs.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	gate := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	cmds := reg.Commands()
	routes := make([]tg.Route, 0, len(cmds))
	admin := 0
	for name, cmd := range cmds {
		label, h := handlerName(name), cmd.Handler
		var handler tele.HandlerFunc = func(c tele.Context) error {
			return newSummary(label).run(c, h)
		}
		if cmd.AdminOnly {
			handler = gate(handler)
			admin++
		}
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		})
	}

	logger.Info(context.Background(), logger.TWire, "tg.wire.commands",
		slog.Int("commands", len(cmds)),
		slog.Int("admin_only", admin),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}
