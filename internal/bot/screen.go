package bot

import (
	"github.com/m3rciful/paperbot/core/telegram/keyboard"
	"github.com/m3rciful/paperbot/internal/nav"

	tele "gopkg.in/telebot.v4"
)

// Button is an inline button that leads to a navigation selection.
type Button struct {
	Text   string
	Target nav.Selection
}

// Screen is a message together with its inline keyboard.
type Screen struct {
	Text string
	Rows [][]Button

	// Markdown sends the text with Telegram markdown (v1) and no link preview.
	Markdown bool
	// Link is the download URL shown on result screens.
	Link string
}

// Outcome is the reaction to one selection. A non-empty Alert is shown as a
// popup and the current screen stays as it is.
type Outcome struct {
	Screen Screen
	Alert  string
}

// Markup converts the button rows into an inline keyboard. Targets are encoded
// verbatim as callback data.
func (s Screen) Markup() *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(s.Rows))
	for _, row := range s.Rows {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btns = append(btns, keyboard.InlineBtn{Text: b.Text, Data: nav.Encode(b.Target)})
		}
		rows = append(rows, btns)
	}
	return keyboard.Inline(rows...)
}

// SendOptions returns the options used to send or edit the screen.
func (s Screen) SendOptions() *tele.SendOptions {
	opts := &tele.SendOptions{}
	if len(s.Rows) > 0 {
		opts.ReplyMarkup = s.Markup()
	}
	if s.Markdown {
		opts.ParseMode = tele.ModeMarkdown
		opts.DisableWebPagePreview = true
	}
	return opts
}

// Targets lists the encoded callback data of every button, row by row.
func (s Screen) Targets() []string {
	var out []string
	for _, row := range s.Rows {
		for _, b := range row {
			out = append(out, nav.Encode(b.Target))
		}
	}
	return out
}
