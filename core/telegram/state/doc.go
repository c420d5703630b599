// Package state keeps per-user conversation sessions for Telegram bots: the
// chosen interface language and the dialog state that decides where the next
// free-text message goes.
package state
