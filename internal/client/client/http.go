package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/common"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 4 << 20

// Session is the part of the session store the transport needs: a token
// source for signing and the logout entry point for 401 responses.
type Session interface {
	Token() string
	Logout(ctx context.Context) models.Session
}

// Doer performs one registry operation and decodes the response into out.
type Doer interface {
	Do(ctx context.Context, op Operation, req Request, out any) error
}

// HTTPClient is the HTTP+JSON transport of the remote resource client.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	session Session
	log     logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets a per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a transport for the API rooted at baseURL.
func NewHTTPClient(baseURL string, session Session, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{},
		session: session,
		log:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Do sends op with req and decodes a 2xx body into out (which may be nil).
//
// A 401 logs the session out before the error is returned, whatever the
// operation. Other non-2xx statuses come back as *APIError; transport
// failures wrap ErrUnavailable.
func (c *HTTPClient) Do(ctx context.Context, op Operation, req Request, out any) error {
	ep, ok := Lookup(op)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}

	httpReq, err := c.newRequest(ctx, ep, req)
	if err != nil {
		return err
	}

	requestID := httpReq.Header.Get(common.RequestIDHeaderName)
	log := c.log.With("op", string(op), "request_id", requestID)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.mapError(ctx, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.mapError(ctx, op, err)
	}

	log.Debug(ctx, "request done", "method", ep.Method, "url", httpReq.URL.String(),
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
		log.Info(ctx, "got 401, ending session")
		c.session.Logout(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(op, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, ep Endpoint, req Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(ep.ResolvePath(req))
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", ep.Op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", ep.Op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if c.session != nil {
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return httpReq, nil
}

func (c *HTTPClient) mapError(ctx context.Context, op Operation, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	c.log.Warn(ctx, "request failed", "op", string(op), "error", err)
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
