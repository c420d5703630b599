package sender

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/paperbot/core/logger"
	"github.com/m3rciful/paperbot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull is returned when every queue slot is taken; the caller
	// decides whether to send inline instead.
	ErrQueueFull = errors.New("telegram sender: queue full")

	errNilRun = errors.New("telegram sender: nil run function")
)

// floodUnit scales Telegram's retry_after seconds.
var floodUnit = time.Second

// ResultFunc receives the outcome of every job: "ok" or an error kind such as
// "timeout", "flood" or "http_4xx".
type ResultFunc func(action, result string)

// Options tunes the dispatcher. Zero values select the defaults noted.
type Options struct {
	QueueSize int // 256
	Workers   int // 4
	// MaxRetries counts retries after the first attempt; zero selects 2.
	MaxRetries   int
	RetryBackoff time.Duration // 2s, multiplied by the attempt number
	// MaxDuration bounds one job including its retries; zero selects 12s.
	MaxDuration time.Duration
	OnResult    ResultFunc
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 2
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

// job is one queued Bot API call. run must be safe to repeat.
type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

func (j job) attrs() []slog.Attr {
	return []slog.Attr{slog.String("action", j.action), slog.String("endpoint", j.endpoint)}
}

// Dispatcher sends Bot API calls from a fixed pool of workers so handlers
// return without waiting on Telegram. Close drains whatever is queued.
type Dispatcher struct {
	opts   Options
	jobs   chan job
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	failed atomic.Uint64
}

func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{opts: opts, jobs: make(chan job, opts.QueueSize)}
	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer d.wg.Done()
			for j := range d.jobs {
				d.process(j)
			}
		}()
	}
	return d
}

// Enqueue queues run without blocking. The update identifiers in ctx are
// carried into the send log lines.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errNilRun
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- job{ctx: ctx, action: action, endpoint: endpoint, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns how many jobs failed for good.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.failed.Load()
}

// Close rejects new jobs, lets the workers finish the queue and waits for
// them. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) process(j job) {
	start := time.Now()
	attempts, err := d.attempt(j)
	took := time.Since(start)

	attrs := append(j.attrs(), slog.Int("attempts", attempts), slog.Duration("elapsed", took))
	if err == nil {
		logger.Debug(j.ctx, logger.Sender, "send.success", attrs...)
		d.report(j.action, "ok")
		return
	}
	d.failed.Add(1)
	kind := Classify(err)
	logger.Error(j.ctx, logger.Sender, "send.fail",
		append(attrs, slog.String("err", Redact(err)), slog.String("err_code", kind))...,
	)
	d.report(j.action, kind)
}

// attempt runs j until it succeeds, fails permanently, runs out of retries or
// exceeds MaxDuration. It returns the number of calls made.
func (d *Dispatcher) attempt(j job) (int, error) {
	ctx, cancel := context.WithTimeout(j.ctx, d.opts.MaxDuration)
	defer cancel()

	var err error
	n := 0
	for n <= d.opts.MaxRetries {
		if cerr := ctx.Err(); cerr != nil {
			return n, errors.Join(err, cerr)
		}
		n++
		if err = j.run(); err == nil {
			return n, nil
		}
		if !retryable(err) || n > d.opts.MaxRetries {
			return n, err
		}
		delay := retryDelay(err, d.opts.RetryBackoff, n)
		logger.Debug(j.ctx, logger.Sender, "send.retry",
			append(j.attrs(), slog.Int("attempt", n), slog.String("err_code", Classify(err)), slog.Duration("delay", delay))...,
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return n, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return n, err
}

func (d *Dispatcher) report(action, result string) {
	if d.opts.OnResult != nil {
		d.opts.OnResult(action, result)
	}
}

// retryable reports transient network failures and flood-control answers.
func retryable(err error) bool {
	var flood tele.FloodError
	return errors.As(err, &flood) || netutil.ShouldRetry(err)
}

// retryDelay honours retry_after on flood errors and otherwise waits
// backoff times the attempt number.
func retryDelay(err error, backoff time.Duration, attempt int) time.Duration {
	var flood tele.FloodError
	if errors.As(err, &flood) && flood.RetryAfter > 0 {
		return time.Duration(flood.RetryAfter) * floodUnit
	}
	return backoff * time.Duration(attempt)
}
