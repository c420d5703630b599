package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHandler("callback.year", "ok", time.Millisecond)
		m.ObserveSearch(0)
		m.PaperAdded(3)
		m.SetCatalogSize(3)
		m.ObserveKeepAlive(nil)
		m.ObserveSend("send.text", "ok")
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("", reg)
	require.NoError(t, err)

	m.ObserveHandler("callback.year", "ok", 5*time.Millisecond)
	m.ObserveHandler("callback.year", "ok", 5*time.Millisecond)
	m.ObserveHandler("callback.year", "fail", time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.handled.WithLabelValues("callback.year", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.handled.WithLabelValues("callback.year", "fail")))

	m.ObserveSearch(0)
	m.ObserveSearch(4)
	m.ObserveSearch(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("hit")))

	m.SetCatalogSize(68)
	m.PaperAdded(69)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.papersAdded))
	assert.Equal(t, 69.0, testutil.ToFloat64(m.catalogPapers))

	m.ObserveKeepAlive(errors.New("timeout"))
	m.ObserveKeepAlive(nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keepAlive.WithLabelValues("fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keepAlive.WithLabelValues("ok")))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New("", reg)
	require.NoError(t, err)
	_, err = New("", reg)
	assert.Error(t, err)
}

func TestRegisterSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 3
	require.NoError(t, RegisterSessions("", reg, func() int { return n }))

	count, err := testutil.GatherAndCount(reg, "paperbot_telegram_sessions")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestObserveSend(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New("", reg)
	require.NoError(t, err)

	m.ObserveSend("send.text", "ok")
	m.ObserveSend("send.text", "flood")
	m.ObserveSend("send.text", "ok")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sends.WithLabelValues("send.text", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sends.WithLabelValues("send.text", "flood")))
}
