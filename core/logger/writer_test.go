package logger

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestAsyncWriterFansOut(t *testing.T) {
	a, b := &lockedBuffer{}, &lockedBuffer{}
	w := newAsyncWriter([]io.Writer{a, b}, 16)

	require.NoError(t, w.Write([]byte("one\n")))
	require.NoError(t, w.Write([]byte("two\n")))
	require.NoError(t, w.Flush())
	assert.Equal(t, "one\ntwo\n", a.String())
	assert.Equal(t, "one\ntwo\n", b.String())
	require.NoError(t, w.Close())
}

func TestAsyncWriterKeepsHealthySinks(t *testing.T) {
	good := &lockedBuffer{}
	w := newAsyncWriter([]io.Writer{brokenWriter{}, good}, 16)

	require.NoError(t, w.Write([]byte("first\n")))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Write([]byte("second\n")))

	err := w.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "first\nsecond\n", good.String())
}

func TestAsyncWriterFailsWhenEverySinkFailed(t *testing.T) {
	w := newAsyncWriter([]io.Writer{brokenWriter{}}, 16)
	require.NoError(t, w.Write([]byte("x\n")))
	_ = w.Flush()
	assert.Error(t, w.Write([]byte("y\n")))
	_ = w.Close()
}

func TestAsyncWriterAfterClose(t *testing.T) {
	w := newAsyncWriter([]io.Writer{&lockedBuffer{}}, 16)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Write([]byte("late\n")), errWriterClosed)
	assert.ErrorIs(t, w.Flush(), errWriterClosed)
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	got := []bool{s.Allow(), s.Allow(), s.Allow(), s.Allow()}
	assert.Equal(t, []bool{true, false, false, true}, got)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	num, den := parseRatioSpec("2/10")
	assert.Equal(t, [2]int{2, 10}, [2]int{num, den})
	num, den = parseRatioSpec("50")
	assert.Equal(t, [2]int{1, 50}, [2]int{num, den})
	num, den = parseRatioSpec("junk")
	assert.Equal(t, [2]int{0, 0}, [2]int{num, den})
}
