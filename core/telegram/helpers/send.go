package helpers

import (
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/m3rciful/paperbot/core/logger"
	"github.com/m3rciful/paperbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.Enqueue(ctx, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, logger.Sender, "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	err := sendAsync(c, "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
	if err == nil {
		CountersFrom(c).record(false, sendOpts)
	}
	return err
}

// Show renders a screen for the current update: callback presses edit the
// message that carried the button, everything else gets a new message.
func Show(c tele.Context, text string, opts *tele.SendOptions) error {
	if opts == nil {
		opts = &tele.SendOptions{}
	}
	if c.Callback() != nil && c.Callback().Message != nil {
		err := c.Edit(text, opts)
		if err != nil && strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		if err == nil {
			CountersFrom(c).record(true, opts)
		}
		return err
	}
	return SendText(c, text, opts)
}

// Alert answers a callback query with a popup instead of changing the screen.
func Alert(c tele.Context, text string) error {
	if c.Callback() == nil {
		return SendText(c, text)
	}
	MarkAnswered(c)
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

const answeredKey = "cb_answered"

// MarkAnswered records that the callback query was already answered so the
// router does not answer it a second time.
func MarkAnswered(c tele.Context) {
	c.Set(answeredKey, true)
}

// Answered reports whether MarkAnswered was called for this update.
func Answered(c tele.Context) bool {
	v, _ := c.Get(answeredKey).(bool)
	return v
}
