package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn is one inline button. With an empty Unique the Data string is
// sent to Telegram verbatim, which lets bots define their own callback
// grammar.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// Inline builds an inline keyboard with one keyboard row per row. Empty rows
// are dropped.
func Inline(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		line := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			line = append(line, *markup.Data(b.Text, b.Unique, b.Data).Inline())
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, line)
	}
	return markup
}

// Chunk splits items into rows of at most n. n below 1 means one per row.
func Chunk[T any](items []T, n int) [][]T {
	n = max(n, 1)
	rows := make([][]T, 0, (len(items)+n-1)/n)
	for len(items) > 0 {
		end := min(n, len(items))
		rows = append(rows, items[:end:end])
		items = items[end:]
	}
	return rows
}
