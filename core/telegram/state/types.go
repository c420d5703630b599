package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
	// StateAwaitingSearch means the next text message is a search query.
	StateAwaitingSearch State = "awaiting_search"
)

// Session stores the preferences and dialog state of a user.
type Session struct {
	Language string
	State    State
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	Get(userID int64) Session
	Len() int

	// Preferences
	Language(userID int64) string
	SetLanguage(userID int64, lang string)

	// Dialog state
	SetState(userID int64, st State)
	GetState(userID int64) State
	HasState(userID int64) bool
	ClearState(userID int64)

	Handle(st State, h tele.HandlerFunc)
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}
