// Package keepalive pings the service's own public health endpoint so that
// hosts which idle processes without inbound traffic keep the bot running.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	coreconfig "github.com/m3rciful/paperbot/core/config"
	"github.com/m3rciful/paperbot/core/logger"
	"github.com/m3rciful/paperbot/core/telegram/netutil"
	"github.com/m3rciful/paperbot/internal/metrics"
)

// Options configures a Pinger. Zero durations fall back to the config defaults.
type Options struct {
	// URL is the public base URL; "/health" is appended.
	URL           string
	Interval      time.Duration
	RetryInterval time.Duration
	Timeout       time.Duration
	Client        *http.Client
	Metrics       *metrics.Metrics
}

// Pinger requests {URL}/health forever: every Interval after a successful
// ping, every RetryInterval after a failed one. Failures are logged and never
// returned.
type Pinger struct {
	target   string
	interval time.Duration
	retry    time.Duration
	timeout  time.Duration
	client   *http.Client
	metrics  *metrics.Metrics
}

// New returns a Pinger, or nil when no URL is configured.
func New(opts Options) *Pinger {
	if opts.URL == "" {
		return nil
	}
	p := &Pinger{
		target:   opts.URL + "/health",
		interval: opts.Interval,
		retry:    opts.RetryInterval,
		timeout:  opts.Timeout,
		client:   opts.Client,
		metrics:  opts.Metrics,
	}
	if p.interval <= 0 {
		p.interval = coreconfig.DefaultKeepAliveInterval
	}
	if p.retry <= 0 {
		p.retry = coreconfig.DefaultKeepAliveRetry
	}
	if p.timeout <= 0 {
		p.timeout = coreconfig.DefaultKeepAliveTimeout
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	return p
}

// FromConfig builds a Pinger from the keep-alive config section.
func FromConfig(cfg coreconfig.KeepAliveConfig, m *metrics.Metrics) *Pinger {
	return New(Options{
		URL:           cfg.URL,
		Interval:      cfg.Interval,
		RetryInterval: cfg.RetryInterval,
		Timeout:       cfg.Timeout,
		Metrics:       m,
	})
}

// Target is the URL being pinged.
func (p *Pinger) Target() string { return p.target }

// Ping performs one request bounded by the configured timeout. Any HTTP
// response counts as alive; only transport errors fail.
func (p *Pinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, nil)
	if err != nil {
		return fmt.Errorf("keepalive: build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("keepalive: ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.KeepAlive.Debug("ping sent",
		slog.String("event", "keepalive.ping"),
		slog.String("url", p.target),
		slog.Int("code", resp.StatusCode),
	)
	return nil
}

// Run pings until ctx is cancelled. It always returns nil.
func (p *Pinger) Run(ctx context.Context) error {
	logger.KeepAlive.Info("keep-alive started",
		slog.String("event", "keepalive.start"),
		slog.String("url", p.target),
		slog.Duration("interval", p.interval),
		slog.Duration("retry_interval", p.retry),
	)
	for {
		wait := p.interval
		err := p.Ping(ctx)
		if ctx.Err() != nil {
			break
		}
		p.metrics.ObserveKeepAlive(err)
		if err != nil {
			wait = p.retry
			logger.KeepAlive.Warn("ping failed",
				slog.String("event", "keepalive.fail"),
				slog.String("url", p.target),
				slog.Bool("transient", netutil.ShouldRetry(err)),
				slog.Int64("next_in_ms", wait.Milliseconds()),
				slog.String("err", err.Error()),
			)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.KeepAlive.Info("keep-alive stopped", slog.String("event", "keepalive.stop"))
			return nil
		case <-timer.C:
		}
	}
	logger.KeepAlive.Info("keep-alive stopped", slog.String("event", "keepalive.stop"))
	return nil
}
