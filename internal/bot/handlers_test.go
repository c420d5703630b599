package bot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type apiCall struct {
	Method string
	Params map[string]any
}

// fakeAPI answers every Bot API method with a stub message and records calls.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	params := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&params)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Params: params})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"}}}`))
}

func (f *fakeAPI) take() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.calls
	f.calls = nil
	return out
}

type harness struct {
	api      *fakeAPI
	bot      *tele.Bot
	nav      *Navigator
	handlers *Handlers
	reg      *tg.Registry
}

func newHarness(t *testing.T, entries ...catalog.Entry) *harness {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := tele.NewBot(tele.Settings{URL: srv.URL, Token: "test", Offline: true})
	require.NoError(t, err)

	n := newTestNavigator(entries...)
	h := NewHandlers(n)
	reg := tg.NewRegistry()
	require.NoError(t, h.Register(reg))
	return &harness{api: api, bot: b, nav: n, handlers: h, reg: reg}
}

func (h *harness) message(userID int64, text, payload string) tele.Context {
	return h.bot.NewContext(tele.Update{ID: 1, Message: &tele.Message{
		ID:      1,
		Text:    text,
		Payload: payload,
		Sender:  &tele.User{ID: userID},
		Chat:    &tele.Chat{ID: userID, Type: tele.ChatPrivate},
	}})
}

func (h *harness) press(userID int64, data string) tele.Context {
	return h.bot.NewContext(tele.Update{ID: 2, Callback: &tele.Callback{
		ID:     "cb",
		Data:   data,
		Sender: &tele.User{ID: userID},
		Message: &tele.Message{
			ID:   5,
			Chat: &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		},
	}})
}

func TestRegisterWiresRegistry(t *testing.T) {
	h := newHarness(t)

	assert.Len(t, h.reg.ListCallbacks(), 11)
	for _, cmd := range []string{"/start", "/admin", "/add_paper"} {
		_, _, ok := h.reg.LookupCommand(cmd)
		assert.True(t, ok, cmd)
	}
	visible := h.reg.ListCommands(true)
	require.Len(t, visible, 1)
	assert.Equal(t, "/start", visible[0].Text)
}

func TestCallbackKey(t *testing.T) {
	assert.Equal(t, "subject", CallbackKey(&tele.Callback{Data: "subject_10_Social_Science"}))
	assert.Equal(t, "back_to_subject", CallbackKey(&tele.Callback{Data: "back_to_subject_10"}))
	assert.Equal(t, "", CallbackKey(&tele.Callback{Data: "bogus"}))
	assert.Equal(t, "", CallbackKey(nil))
}

func TestStartSendsLanguageChooser(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.handlers.Start(h.message(42, "/start", "")))

	calls := h.api.take()
	require.Len(t, calls, 1)
	assert.Equal(t, "sendMessage", calls[0].Method)
	assert.Contains(t, calls[0].Params["text"], "Welcome to Question Paper Bot")
	assert.Contains(t, calls[0].Params["reply_markup"], `"callback_data":"lang_hi"`)
}

func TestCallbackEditsMessageWithLink(t *testing.T) {
	h := newHarness(t, mathEntry("2023", "class10/math/2023.pdf"))
	require.NoError(t, h.handlers.Callback(h.press(42, "year_10_Mathematics_2023")))

	calls := h.api.take()
	require.Len(t, calls, 1)
	assert.Equal(t, "editMessageText", calls[0].Method)
	assert.Contains(t, calls[0].Params["text"], "https://x/papers/class10/math/2023.pdf")
	assert.Equal(t, "Markdown", calls[0].Params["parse_mode"])
}

func TestUnauthorizedAdminCallbackAlerts(t *testing.T) {
	h := newHarness(t)
	c := h.press(42, "admin_view")
	require.NoError(t, h.handlers.Callback(c))

	calls := h.api.take()
	require.Len(t, calls, 1)
	assert.Equal(t, "answerCallbackQuery", calls[0].Method)
	assert.Equal(t, "❌ Unauthorized!", calls[0].Params["text"])
	assert.Equal(t, true, calls[0].Params["show_alert"])
}

func TestSearchConversation(t *testing.T) {
	h := newHarness(t,
		mathEntry("2023", "a"),
		catalog.Entry{Class: "9", Subject: "English", Year: "2021", Path: "b"},
	)
	sessions := h.nav.Sessions()

	require.NoError(t, h.handlers.Callback(h.press(42, "search")))
	require.True(t, sessions.InProgress(42))
	h.api.take()

	require.NoError(t, sessions.ManagerHandler(h.message(42, "english", "")))
	assert.False(t, sessions.InProgress(42))

	calls := h.api.take()
	require.Len(t, calls, 1)
	assert.Equal(t, "sendMessage", calls[0].Method)
	assert.Equal(t, "🔍 Search Results for 'english':", calls[0].Params["text"])
	assert.Contains(t, calls[0].Params["reply_markup"], "year_9_English_2021")
}

func TestAddPaperCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.handlers.AddPaper(h.message(testAdminID, "/add_paper 10|Mathematics|2024|class10/math/2024.pdf", "10|Mathematics|2024|class10/math/2024.pdf")))
	path, ok := h.nav.catalog.Lookup("10", "Mathematics", "2024")
	require.True(t, ok)
	assert.Equal(t, "class10/math/2024.pdf", path)

	require.NoError(t, h.handlers.AddPaper(h.message(42, "/add_paper 1|2|3|4", "1|2|3|4")))
	assert.Equal(t, 1, h.nav.catalog.Len())

	calls := h.api.take()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Params["text"], "Paper added successfully")
	assert.Equal(t, "❌ Unauthorized access!", calls[1].Params["text"])
}

func TestUnknownCallbackShowsNotFound(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.handlers.UnknownCallback()(h.press(42, "bogus")))

	calls := h.api.take()
	require.Len(t, calls, 1)
	assert.Equal(t, "editMessageText", calls[0].Method)
	assert.Equal(t, "❌ Sorry, this paper is not available yet.", calls[0].Params["text"])
}

func TestAddPaperKeepsPayloadSpacing(t *testing.T) {
	h := newHarness(t)
	payload := "10|Social  Science|2024|class10/social/2024.pdf"

	require.NoError(t, h.handlers.AddPaper(h.message(testAdminID, "/add_paper "+payload, payload)))
	path, ok := h.nav.catalog.Lookup("10", "Social  Science", "2024")
	require.True(t, ok)
	assert.Equal(t, "class10/social/2024.pdf", path)

	require.NoError(t, h.handlers.AddPaper(h.message(testAdminID, "/add_paper", "  ")))
	calls := h.api.take()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[1].Params["text"], "To add a new paper")
}
