package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/paperbot/core/telegram/helpers"
)

func TestLoggerMiddlewareRunsOncePerUpdate(t *testing.T) {
	c := contextFrom(t, &tele.User{ID: 7})

	var rids []string
	inner := func(c tele.Context) error {
		rid, _ := c.Get(tghelpers.RIDKey).(string)
		rids = append(rids, rid)
		return nil
	}
	h := LoggerMiddleware(LoggerMiddleware(inner))
	require.NoError(t, h(c))

	require.Len(t, rids, 1)
	assert.NotEmpty(t, rids[0])
	ctx, ok := tghelpers.ContextFrom(c)
	require.True(t, ok)
	assert.Same(t, ctx, tghelpers.BuildContext(c))
}

func TestParseCallback(t *testing.T) {
	k, p := ParseCallback(&tele.Callback{Data: "\fopen| 1|2"})
	assert.Equal(t, "open", k)
	assert.Equal(t, " 1|2", p)

	k, p = ParseCallback(&tele.Callback{Data: "class_10"})
	assert.Equal(t, "class_10", k)
	assert.Empty(t, p)

	k, _ = ParseCallback(nil)
	assert.Empty(t, k)
}

func TestMessageMetricsMiddlewareAttachesCounters(t *testing.T) {
	c := contextFrom(t, &tele.User{ID: 1})
	var seen *tghelpers.Counters
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		seen = tghelpers.CountersFrom(c)
		return nil
	})
	require.NoError(t, h(c))
	require.NotNil(t, seen)
	assert.Same(t, seen, tghelpers.CountersFrom(c))
	assert.Zero(t, seen.Messages())
}
