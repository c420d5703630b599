package middleware

import (
	"log/slog"

	"github.com/m3rciful/paperbot/core/logger"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AdminOptions configures the admin gate.
type AdminOptions struct {
	AdminID  int64
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware passes only the configured admin through. With no admin
// configured every sender is rejected.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if isAdmin(c, opts.AdminID) {
				return next(c)
			}
			logger.Info(tghelpers.BuildContext(c), logger.Admin, "admin.denied",
				slog.Bool("configured", opts.AdminID != 0))
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}

func isAdmin(c tele.Context, adminID int64) bool {
	return adminID != 0 && c.Sender() != nil && c.Sender().ID == adminID
}
