package telegram

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/velrin/telekit/core/telegram/netutil"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultResponseTimeout   = 5 * time.Second
	defaultClientTimeout     = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	defaultRetryAttempts     = 3
	defaultRetryBackoff      = 2 * time.Second
	maxRetryAfter            = 30 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls:
// bounded timeouts on every phase plus transparent retries for transient
// network errors and HTTP 429 responses.
func BuildHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshake,
		ResponseHeaderTimeout: defaultResponseTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout: defaultClientTimeout,
		Transport: &retryTransport{
			base:       transport,
			maxRetries: defaultRetryAttempts,
			backoff:    defaultRetryBackoff,
		},
	}
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	attempts := t.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && !replayable(req) {
			return nil, lastErr
		}
		currReq, err := t.cloneRequest(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := base.RoundTrip(currReq)
		if err == nil && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		var delay time.Duration
		switch {
		case err != nil:
			lastErr = err
			if !netutil.ShouldRetry(err) || attempt == attempts {
				return nil, lastErr
			}
			delay = t.backoff * time.Duration(attempt)
		default:
			if attempt == attempts || !replayable(req) {
				return resp, nil
			}
			delay = retryAfter(resp, t.backoff*time.Duration(attempt))
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			resp.Body.Close()
		}

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}
		}
	}

	return nil, lastErr
}

// replayable reports whether the request body can be rebuilt for a retry.
func replayable(req *http.Request) bool {
	return req.Body == nil || req.GetBody != nil
}

// cloneRequest prepares the request for the given attempt; retries need a
// fresh body.
func (t *retryTransport) cloneRequest(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 {
		return req, nil
	}
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// retryAfter reads the Retry-After header of a 429 response, capped so a
// hostile value cannot stall the worker.
func retryAfter(resp *http.Response, fallback time.Duration) time.Duration {
	if resp == nil {
		return fallback
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return fallback
	}
	wait := time.Duration(secs) * time.Second
	if wait > maxRetryAfter {
		return maxRetryAfter
	}
	return wait
}
