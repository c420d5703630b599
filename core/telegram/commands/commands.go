// Package commands describes slash commands kept in the bot registry.
package commands

import tele "gopkg.in/telebot.v4"

// Command is a slash command with its handler and menu metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands are gated by the admin middleware and never listed
	// in the public command menu.
	AdminOnly bool
	Hidden    bool
	// Aliases are matched by the text router, with or without the slash.
	Aliases []string
}

// Public reports whether the command belongs in the command menu.
func (c Command) Public() bool {
	return !c.Hidden && !c.AdminOnly
}
