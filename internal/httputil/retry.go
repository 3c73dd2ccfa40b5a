// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the REST transport.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// MaxRetryAfter caps the wait a server can request through Retry-After.
var MaxRetryAfter = 30 * time.Second

const defaultMaxRetries = 3

// Retryable reports whether a response with this status may be retried:
// 429 (Too Many Requests) and 503 (Service Unavailable).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// retryable narrows Retryable by method. A 503 on a POST or PATCH may follow
// a write the server already applied, so only 429 is replayed for those.
func retryable(method string, status int) bool {
	switch method {
	case http.MethodPost, http.MethodPatch:
		return status == http.StatusTooManyRequests
	}
	return Retryable(status)
}

// DoWithRetry executes an HTTP request and retries retryable responses with
// exponential backoff: RetryBaseDelay, doubled each attempt, unless the
// server sends a Retry-After in seconds.
//
// POST and PATCH are retried on 429 only. When maxRetries is 0 the default
// (3) is used. Request bodies are replayed
// through req.GetBody; a request with a body but no GetBody is sent once.
// If the context is cancelled during a backoff wait the function returns
// ctx.Err(). After exhausting retries the last response is returned so the
// caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = body
		}

		resp, err := client.Do(r)
		if err != nil {
			return nil, err
		}

		if !retryable(req.Method, resp.StatusCode) || attempt >= maxRetries || !replayable {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(resp, attempt)):
		}
	}
}

func backoff(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return min(time.Duration(secs)*time.Second, MaxRetryAfter)
		}
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
