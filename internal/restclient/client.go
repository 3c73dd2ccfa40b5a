// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package restclient implements the saga repositories over the project REST
// API. Authentication is a capability passed at construction; nothing is
// read from ambient state. Retries on 429/503 happen here, in the
// transport, through httputil.DoWithRetry.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/internal/httputil"
	"github.com/pdiddy/research-projects/internal/saga"
	"github.com/pdiddy/research-projects/internal/secrets"
	"github.com/pdiddy/research-projects/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "research-projects/0.1"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Authenticator supplies the bearer token for each request.
type Authenticator interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token. The empty token sends no header.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// SecretToken reads the api-token from a loaded secrets store, letting an
// explicit override win.
func SecretToken(s secrets.Store, override string) StaticToken {
	return StaticToken(s.Lookup(secrets.APIToken, override))
}

// Client talks to the project REST API.
type Client struct {
	baseURL    string
	http       *http.Client
	auth       Authenticator
	userAgent  string
	maxRetries int
	logger     *zap.Logger
}

// New returns a Client for cfg. A nil auth sends unauthenticated requests;
// a nil logger discards logs.
func New(cfg types.ClientConfig, auth Authenticator, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	if auth == nil {
		auth = StaticToken("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		auth:       auth,
		userAgent:  ua,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. a test server's.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Repositories returns every saga collaborator backed by c.
func (c *Client) Repositories() saga.Repositories {
	return saga.Repositories{
		Projects:     c.Projects(),
		Publications: c.Publications(),
		Patents:      c.Patents(),
		Research:     c.Research(),
		Attachments:  c.Attachments(),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte, contentType string) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "obtaining auth token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out. Non-2xx responses
// become *errors.StatusError tagged with op.
func (c *Client) do(ctx context.Context, op string, req *http.Request, out any) error {
	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrUnavailable), "%s", op)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "%s: decoding response", op)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body []byte
	contentType := ""
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "%s: encoding request", op)
		}
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return errors.Wrap(err, op)
	}
	return c.do(ctx, op, req, out)
}

// statusError reads the {"message": "..."} body the API returns on failure.
func statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &errors.StatusError{Op: op, StatusCode: resp.StatusCode, Message: msg}
}
