package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/paperbot/core/config"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestRateLimitMiddleware(t *testing.T) {
	b, err := tele.NewBot(tele.Settings{Token: "test", Offline: true})
	require.NoError(t, err)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	passed, limited := 0, 0
	h := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		Exclude:   map[string]struct{}{coreconfig.UpdateCallback: {}},
		OnLimited: func(tele.Context) error { limited++; return nil },
		Now:       clock.now,
	})(func(tele.Context) error { passed++; return nil })

	msg := func(userID int64) tele.Context {
		return b.NewContext(tele.Update{Message: &tele.Message{Sender: &tele.User{ID: userID}, Chat: &tele.Chat{ID: userID}}})
	}
	press := b.NewContext(tele.Update{Callback: &tele.Callback{Sender: &tele.User{ID: 1}}})

	require.NoError(t, h(msg(1)))
	require.NoError(t, h(msg(1)))
	require.NoError(t, h(msg(2)))
	require.NoError(t, h(press))
	assert.Equal(t, 3, passed)
	assert.Equal(t, 1, limited)

	clock.t = clock.t.Add(2 * time.Second)
	require.NoError(t, h(msg(1)))
	assert.Equal(t, 4, passed)
}

func TestUpdateKind(t *testing.T) {
	assert.Equal(t, coreconfig.UpdateCallback, UpdateKind(tele.Update{Callback: &tele.Callback{}}))
	assert.Equal(t, coreconfig.UpdateMessage, UpdateKind(tele.Update{Message: &tele.Message{}}))
	assert.Equal(t, coreconfig.UpdateInlineQuery, UpdateKind(tele.Update{Query: &tele.Query{}}))
	assert.Equal(t, "other", UpdateKind(tele.Update{}))
}
