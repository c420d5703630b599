package telegram

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/paperbot/core/telegram/netutil"
)

// Limits for Bot API calls. getUpdates keeps the response open for the
// long-poll timeout, so the header and client limits grow by it.
const (
	defaultResponseTimeout = 5 * time.Second
	defaultClientTimeout   = 30 * time.Second
	apiRetries             = 3
	apiRetryStep           = 2 * time.Second
)

// BuildHTTPClient returns the Bot API client: pooled keep-alive connections to
// api.telegram.org and a transport that retries dial and reset failures.
func BuildHTTPClient(pollTimeout time.Duration) *http.Client {
	pollTimeout = max(pollTimeout, 0)
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: defaultResponseTimeout + pollTimeout,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Timeout:   defaultClientTimeout + pollTimeout,
		Transport: &retryTransport{base: base, maxRetries: apiRetries, step: apiRetryStep},
	}
}

// retryTransport repeats a request after a transient network failure,
// waiting step, 2*step, ... between attempts. Requests whose body cannot be
// replayed are tried once.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	step       time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	for attempt := 1; attempt <= t.maxRetries && err != nil && netutil.ShouldRetry(err); attempt++ {
		if req.Body != nil && req.GetBody == nil {
			break
		}
		if werr := sleepCtx(req.Context(), t.step*time.Duration(attempt)); werr != nil {
			return nil, werr
		}
		next := req.Clone(req.Context())
		if req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				return nil, berr
			}
			next.Body = body
		}
		resp, err = t.base.RoundTrip(next)
	}
	return resp, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
