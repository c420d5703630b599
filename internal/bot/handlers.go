package bot

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/paperbot/core/logger"
	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"
	"github.com/m3rciful/paperbot/core/telegram/state"
	"github.com/m3rciful/paperbot/core/telegram/ui"
	"github.com/m3rciful/paperbot/internal/catalog"
	"github.com/m3rciful/paperbot/internal/i18n"
	"github.com/m3rciful/paperbot/internal/nav"

	tele "gopkg.in/telebot.v4"
)

var _ ui.FallbackProvider = (*Handlers)(nil)

// Handlers adapts a Navigator to telebot updates.
type Handlers struct {
	nav *Navigator
}

// NewHandlers returns telebot handlers backed by n.
func NewHandlers(n *Navigator) *Handlers {
	return &Handlers{nav: n}
}

// Register adds the bot commands and callbacks to reg and binds the search
// prompt state to the search handler.
func (h *Handlers) Register(reg *tg.Registry) error {
	errs := []error{
		reg.RegisterCommand("/start", commands.Command{
			Handler:     h.Start,
			Description: "Browse question papers",
		}),
		reg.RegisterCommand("/admin", commands.Command{
			Handler:     h.Admin,
			Description: "Open the admin panel",
			AdminOnly:   true,
		}),
		reg.RegisterCommand("/add_paper", commands.Command{
			Handler:     h.AddPaper,
			Description: "Add a paper: Class|Subject|Year|Path",
			AdminOnly:   true,
		}),
	}
	for _, kind := range nav.Kinds() {
		errs = append(errs, reg.RegisterCallback(string(kind), h.Callback))
	}
	reg.SetCallbackNotFound(h.UnknownCallback())
	h.nav.Sessions().Handle(state.StateAwaitingSearch, h.Search)
	return errors.Join(errs...)
}

// CallbackKey maps callback data to its registry key.
func CallbackKey(cb *tele.Callback) string {
	if cb == nil {
		return ""
	}
	return nav.KindOf(cb.Data)
}

// Start shows the language chooser.
func (h *Handlers) Start(c tele.Context) error {
	logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelInfo, "user.start",
		slog.Int64("user_id", c.Sender().ID),
		slog.String("username", logger.SanitizeLimit(c.Sender().Username, 64)),
	)
	return show(c, h.nav.Start())
}

// Admin shows the admin panel to the admin and an unauthorized notice to
// everyone else.
func (h *Handlers) Admin(c tele.Context) error {
	screen, err := h.nav.Admin(c.Sender().ID)
	if errors.Is(err, ErrUnauthorized) {
		h.logDenied(c, "admin")
	} else {
		logger.LogEvent(tghelpers.BuildContext(c), logger.Admin, slog.LevelInfo, "admin.panel",
			slog.Int64("user_id", c.Sender().ID),
		)
	}
	return show(c, screen)
}

// AddPaper handles /add_paper Class|Subject|Year|Path. The payload is passed
// on untouched so fields keep their exact spacing.
func (h *Handlers) AddPaper(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	var raw string
	if m := c.Message(); m != nil {
		raw = m.Payload
	}
	screen, err := h.nav.AddPaper(ctx, c.Sender().ID, raw)
	switch {
	case errors.Is(err, ErrUnauthorized):
		h.logDenied(c, "add_paper")
	case errors.Is(err, catalog.ErrMalformedEntry):
		logger.LogEvent(ctx, logger.Admin, slog.LevelWarn, "admin.add_paper.malformed",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("payload", logger.SanitizeLimit(raw, 256)),
			slog.String("err", err.Error()),
		)
	}
	return show(c, screen)
}

// RejectAdmin answers admin-only commands sent by other users.
func (h *Handlers) RejectAdmin(c tele.Context) error {
	h.logDenied(c, "command")
	return show(c, h.nav.render.Message(h.nav.lang(c.Sender().ID), i18n.Unauthorized))
}

// Callback dispatches an inline button press.
func (h *Handlers) Callback(c tele.Context) error {
	sel, err := nav.Decode(c.Callback().Data)
	if err != nil {
		return fmt.Errorf("bot: callback: %w", err)
	}
	out := h.nav.Navigate(c.Sender().ID, sel)
	if out.Alert != "" {
		return tghelpers.Alert(c, out.Alert)
	}
	return show(c, out.Screen)
}

// Search consumes the message sent after the search prompt.
func (h *Handlers) Search(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return show(c, h.nav.Search(ctx, c.Sender().ID, c.Text()))
}

// UnknownText answers free text outside of a search prompt.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return show(c, h.nav.UnknownText(c.Sender().ID))
	}
}

// UnknownDocument answers documents, which the bot does not accept.
func (h *Handlers) UnknownDocument() tele.HandlerFunc {
	return h.UnknownText()
}

// UnknownCallback replaces the screen of a stale or foreign button with the
// not-found screen.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return show(c, h.nav.render.NotFound(h.nav.lang(c.Sender().ID)))
	}
}

// RateLimited answers updates dropped by the rate limiter. Button presses get
// a toast so the client stops waiting; messages are dropped silently.
func (h *Handlers) RateLimited(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	tghelpers.MarkAnswered(c)
	return c.Respond(&tele.CallbackResponse{Text: h.nav.texts.Text(h.nav.lang(c.Sender().ID), i18n.SlowDown)})
}

func (h *Handlers) logDenied(c tele.Context, action string) {
	logger.LogEvent(tghelpers.BuildContext(c), logger.Admin, slog.LevelWarn, "admin.unauthorized",
		slog.Int64("user_id", c.Sender().ID),
		slog.String("action", action),
	)
}

func show(c tele.Context, s Screen) error {
	return tghelpers.Show(c, s.Text, s.SendOptions())
}
