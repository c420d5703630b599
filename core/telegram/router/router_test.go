package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"
	"github.com/m3rciful/paperbot/core/telegram/middleware"
)

type recordedCall struct {
	method string
	params map[string]any
}

type botAPI struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (a *botAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&params)
	a.mu.Lock()
	a.calls = append(a.calls, recordedCall{
		method: r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:],
		params: params,
	})
	a.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
}

func (a *botAPI) methods() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.calls))
	for _, c := range a.calls {
		out = append(out, c.method)
	}
	return out
}

type observed struct {
	mu    sync.Mutex
	calls []string
}

func (o *observed) ObserveHandler(handler, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, handler+":"+status)
}

func newBot(t *testing.T) (*tele.Bot, *botAPI) {
	t.Helper()
	api := &botAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	b, err := tele.NewBot(tele.Settings{URL: srv.URL, Token: "test", Offline: true})
	require.NoError(t, err)
	return b, api
}

func press(b *tele.Bot, data string) tele.Context {
	return b.NewContext(tele.Update{ID: 7, Callback: &tele.Callback{
		ID:     "cb",
		Data:   data,
		Sender: &tele.User{ID: 1},
	}})
}

func rawKey(cb *tele.Callback) string {
	key, _, _ := strings.Cut(cb.Data, ":")
	return key
}

func TestCallbackRouteAnswersOnceAfterHandler(t *testing.T) {
	b, api := newBot(t)
	obs := &observed{}
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(nil) })

	reg := tg.NewRegistry()
	var payload string
	require.NoError(t, reg.RegisterCallback("open", func(c tele.Context) error {
		payload = c.Callback().Data
		return nil
	}))
	route := CallbackRoute(reg, CallbackOptions{Key: rawKey})
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	require.NoError(t, route.Handler(press(b, "open:42")))
	assert.Equal(t, "open:42", payload)
	assert.Equal(t, []string{"answerCallbackQuery"}, api.methods())
	assert.Equal(t, []string{"callback.open:ok"}, obs.calls)
}

func TestCallbackRouteLeavesAlertsAlone(t *testing.T) {
	b, api := newBot(t)
	reg := tg.NewRegistry()
	require.NoError(t, reg.RegisterCallback("deny", func(c tele.Context) error {
		return tghelpers.Alert(c, "no")
	}))

	require.NoError(t, CallbackRoute(reg, CallbackOptions{Key: rawKey}).Handler(press(b, "deny")))
	require.Equal(t, []string{"answerCallbackQuery"}, api.methods())
	assert.Equal(t, true, api.calls[0].params["show_alert"])
}

func TestCallbackRouteUnknownKeyUsesFallback(t *testing.T) {
	b, api := newBot(t)
	reg := tg.NewRegistry()

	require.NoError(t, CallbackRoute(reg, CallbackOptions{Key: rawKey}).Handler(press(b, "missing")))
	require.Equal(t, []string{"answerCallbackQuery"}, api.methods())
	assert.Equal(t, "Unsupported action", api.calls[0].params["text"])
}

func TestCallbackRouteDefaultKey(t *testing.T) {
	k, p := middleware.ParseCallback(&tele.Callback{Unique: "x", Data: "p"})
	assert.Equal(t, "x", k)
	assert.Equal(t, "p", p)

	k, p = middleware.ParseCallback(&tele.Callback{Data: "\fbtn|payload"})
	assert.Equal(t, "btn", k)
	assert.Equal(t, "payload", p)
}

func TestCommandRoutesGateAdminCommands(t *testing.T) {
	b, _ := newBot(t)
	reg := tg.NewRegistry()
	var ran []string
	reg.RegisterCommand("/start", commands.Command{
		Description: "start",
		Handler:     func(tele.Context) error { ran = append(ran, "start"); return nil },
	})
	reg.RegisterCommand("/admin", commands.Command{
		Description: "admin",
		AdminOnly:   true,
		Handler:     func(tele.Context) error { ran = append(ran, "admin"); return nil },
	})

	routes := CommandRoutes(reg, CommandRouteOptions{
		AdminID:       5,
		OnAdminReject: func(tele.Context) error { ran = append(ran, "rejected"); return nil },
	})
	require.Len(t, routes, 2)

	byEndpoint := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		byEndpoint[r.Endpoint] = r.Handler
	}
	msg := func(userID int64) tele.Context {
		return b.NewContext(tele.Update{ID: int(userID), Message: &tele.Message{
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID},
		}})
	}

	require.NoError(t, byEndpoint["/start"](msg(1)))
	require.NoError(t, byEndpoint["/admin"](msg(1)))
	require.NoError(t, byEndpoint["/admin"](msg(5)))
	assert.Equal(t, []string{"start", "rejected", "admin"}, ran)
}

type fsm struct {
	active  bool
	handled int
}

func (f *fsm) InProgress(int64) bool { return f.active }

func (f *fsm) ManagerHandler(tele.Context) error {
	f.handled++
	f.active = false
	return nil
}

func TestTextRoutesPreferActiveConversation(t *testing.T) {
	b, _ := newBot(t)
	state := &fsm{active: true}
	unknown := 0
	routes := TextRoutes(state, tg.NewRegistry(), TextOptions{
		UnknownText: func(tele.Context) error { unknown++; return nil },
	})
	require.Len(t, routes, 2)
	text := routes[0].Handler

	c := func() tele.Context {
		return b.NewContext(tele.Update{Message: &tele.Message{
			Text:   "maths",
			Sender: &tele.User{ID: 3},
			Chat:   &tele.Chat{ID: 3},
		}})
	}
	require.NoError(t, text(c()))
	require.NoError(t, text(c()))
	assert.Equal(t, 1, state.handled)
	assert.Equal(t, 1, unknown)
}

func TestHandlerName(t *testing.T) {
	assert.Equal(t, "add_paper", handlerName("/add_paper"))
	assert.Equal(t, "search_more", handlerName(" Search More "))
	assert.Equal(t, "unknown", handlerName("/"))
}

type fallbacks struct{ hits []string }

func (f *fallbacks) handler(name string) tele.HandlerFunc {
	return func(tele.Context) error {
		f.hits = append(f.hits, name)
		return nil
	}
}

func (f *fallbacks) UnknownText() tele.HandlerFunc     { return f.handler("text") }
func (f *fallbacks) UnknownDocument() tele.HandlerFunc { return f.handler("document") }
func (f *fallbacks) UnknownCallback() tele.HandlerFunc { return f.handler("callback") }

func TestUpdateRoutesSendMissesToFallbacks(t *testing.T) {
	b, _ := newBot(t)
	fb := &fallbacks{}
	routes := UpdateRoutes(tg.NewRegistry(), &fsm{}, rawKey, fb)
	require.Len(t, routes, 3)
	assert.Equal(t, tele.OnCallback, routes[0].Endpoint)

	require.NoError(t, routes[0].Handler(press(b, "stale:1")))
	require.NoError(t, routes[1].Handler(b.NewContext(tele.Update{Message: &tele.Message{
		Text:   "hello",
		Sender: &tele.User{ID: 3},
		Chat:   &tele.Chat{ID: 3},
	}})))
	assert.Equal(t, []string{"callback", "text"}, fb.hits)
}

func TestTextRoutesKeepConversationOpenOnCommands(t *testing.T) {
	b, _ := newBot(t)
	state := &fsm{active: true}
	unknown := 0
	routes := TextRoutes(state, tg.NewRegistry(), TextOptions{
		UnknownText: func(tele.Context) error { unknown++; return nil },
	})

	require.NoError(t, routes[0].Handler(b.NewContext(tele.Update{Message: &tele.Message{
		Text:   "/help",
		Sender: &tele.User{ID: 3},
		Chat:   &tele.Chat{ID: 3},
	}})))
	assert.Equal(t, 0, state.handled)
	assert.True(t, state.active)
	assert.Equal(t, 1, unknown)
}
