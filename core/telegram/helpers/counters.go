package helpers

import (
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

const countersKey = "screen_counters"

// Counters tracks the screens produced for one update. Sends are counted when
// accepted by the dispatcher, edits once Telegram confirms them, so the values
// are final by the time the handler returns.
type Counters struct {
	sent     atomic.Int64
	edited   atomic.Int64
	keyboard atomic.Bool
}

// AttachCounters installs fresh counters on c and returns them.
func AttachCounters(c tele.Context) *Counters {
	n := &Counters{}
	c.Set(countersKey, n)
	return n
}

// CountersFrom returns the counters of the current update, or nil when none
// were attached.
func CountersFrom(c tele.Context) *Counters {
	n, _ := c.Get(countersKey).(*Counters)
	return n
}

func (n *Counters) record(edited bool, opts *tele.SendOptions) {
	if n == nil {
		return
	}
	if edited {
		n.edited.Add(1)
	} else {
		n.sent.Add(1)
	}
	if opts != nil && opts.ReplyMarkup != nil {
		n.keyboard.Store(true)
	}
}

// Sent is the number of new messages.
func (n *Counters) Sent() int {
	if n == nil {
		return 0
	}
	return int(n.sent.Load())
}

// Edited is the number of edited messages.
func (n *Counters) Edited() int {
	if n == nil {
		return 0
	}
	return int(n.edited.Load())
}

// Messages is the number of outgoing messages, edits included.
func (n *Counters) Messages() int {
	return n.Sent() + n.Edited()
}

// Keyboard reports whether any screen carried a keyboard.
func (n *Counters) Keyboard() bool {
	return n != nil && n.keyboard.Load()
}
