package state

import (
	"log/slog"
	"sync"

	"github.com/m3rciful/paperbot/core/logger"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// memoryManager keeps sessions for the lifetime of the process. Sessions are
// never evicted.
type memoryManager struct {
	mu          sync.RWMutex
	sessions    map[int64]*Session
	defaultLang string

	handlersMu sync.RWMutex
	handlers   map[State]tele.HandlerFunc
}

// NewMemoryManager constructs an in-memory Manager. Users without a stored
// preference report defaultLang.
func NewMemoryManager(defaultLang string) Manager {
	return &memoryManager{
		sessions:    make(map[int64]*Session),
		defaultLang: defaultLang,
		handlers:    make(map[State]tele.HandlerFunc),
	}
}

// session returns the stored session, creating it on first write. Callers must hold mu.
func (m *memoryManager) session(userID int64) *Session {
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{Language: m.defaultLang, State: StateIdle}
		m.sessions[userID] = sess
	}
	return sess
}

// Get returns a copy of the user's session, or a default idle session.
func (m *memoryManager) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, ok := m.sessions[userID]; ok {
		return *sess
	}
	return Session{Language: m.defaultLang, State: StateIdle}
}

// Len reports how many users have a stored session.
func (m *memoryManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Language returns the user's chosen language or the default one.
func (m *memoryManager) Language(userID int64) string {
	return m.Get(userID).Language
}

// SetLanguage stores the interface language for a user.
func (m *memoryManager) SetLanguage(userID int64, lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).Language = lang
}

// SetState sets the FSM state for the given user.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).State = st
}

// GetState returns the current FSM state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	return m.Get(userID).State
}

// ClearState resets the FSM state to idle without touching preferences.
func (m *memoryManager) ClearState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		sess.State = StateIdle
	}
}

// HasState checks if a user has an active state other than idle.
func (m *memoryManager) HasState(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.State != StateIdle
}

// Handle associates a state with the handler that consumes the next text message.
func (m *memoryManager) Handle(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	m.handlersMu.Lock()
	defer m.handlersMu.Unlock()
	m.handlers[st] = h
}

// InProgress reports whether the user currently has an active FSM state.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.HasState(userID)
}

// ManagerHandler resets the user's state and runs the handler registered for
// the state the user was in. A state is consumed by exactly one message.
func (m *memoryManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	current := m.GetState(userID)
	m.ClearState(userID)

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, logger.TG, "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	m.handlersMu.RLock()
	handler, ok := m.handlers[current]
	m.handlersMu.RUnlock()
	if ok {
		return handler(c)
	}
	return nil
}
