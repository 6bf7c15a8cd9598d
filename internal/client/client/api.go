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
	"strings"
	"time"

	"github.com/dmitrijs2005/savingsadmin/internal/client/session"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/dmitrijs2005/savingsadmin/internal/logging"
	"github.com/google/uuid"
)

// RequestOptions are the caller-supplied parts of a request.
//
// Body: nil sends no body, []byte is sent as is, anything else is encoded
// as JSON. Header values override the client's defaults on conflict.
type RequestOptions struct {
	Method string
	Header http.Header
	Query  url.Values
	Body   any
}

// APIClient talks to the savings analyzer backend. Do attaches the stored
// bearer credential and enforces the authentication-expiry policy; Public
// sends unauthenticated requests for the auth endpoints.
//
// It is safe for concurrent use.
type APIClient struct {
	baseURL      string
	httpClient   *http.Client
	store        session.Store
	navigator    Navigator
	log          logging.Logger
	newRequestID func() string
}

type Option func(*APIClient)

func WithHTTPClient(c *http.Client) Option {
	return func(a *APIClient) { a.httpClient = c }
}

func WithLogger(l logging.Logger) Option {
	return func(a *APIClient) { a.log = l }
}

func WithRequestIDFunc(f func() string) Option {
	return func(a *APIClient) { a.newRequestID = f }
}

// New creates a client for baseURL (e.g. "https://api.example.com").
// The http.Client has no timeout; deadlines come from the caller's context.
func New(baseURL string, store session.Store, navigator Navigator, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		store:        store,
		navigator:    navigator,
		log:          logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Do performs an authenticated request against base URL + path.
//
// Without a stored credential no request is made. A 401 answer clears the
// stored session. In both cases navigation to SignInPage is issued once and
// OutcomeAuthRequired is returned; the 401 body never reaches the caller.
// Every other answer is returned unchanged as OutcomeSuccess. There are no
// retries.
func (c *APIClient) Do(ctx context.Context, path string, opts RequestOptions) Outcome {
	sess, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionCorrupted) {
			c.log.Warn(ctx, "stored session unreadable, signing out", "error", err)
			c.expireSession(ctx)
			return authRequired()
		}
		c.log.Error(ctx, "failed to read credential", "error", err)
		return transportFailure(err)
	}

	if sess == nil {
		c.log.Info(ctx, "no credential stored, redirecting to sign-in", "path", path)
		c.navigator.Navigate(SignInPage)
		return authRequired()
	}

	out := c.send(ctx, path, opts, sess.Token)
	if out.Kind != OutcomeSuccess {
		return out
	}

	if out.Response.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "credential rejected, session cleared", "path", path)
		c.expireSession(ctx)
		return authRequired()
	}

	return out
}

// Public performs a request without credential and without the 401 policy.
// Any HTTP answer, including 401, is returned as OutcomeSuccess.
func (c *APIClient) Public(ctx context.Context, path string, opts RequestOptions) Outcome {
	return c.send(ctx, path, opts, "")
}

func (c *APIClient) expireSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	c.navigator.Navigate(SignInPage)
}

func (c *APIClient) send(ctx context.Context, path string, opts RequestOptions, token string) Outcome {
	req, err := c.newRequest(ctx, path, opts, token)
	if err != nil {
		return transportFailure(err)
	}

	requestID := req.Header.Get(common.RequestIDHeaderName)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", req.Method, "path", path, "request_id", requestID, "error", err)
		return transportFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn(ctx, "reading response failed", "method", req.Method, "path", path, "request_id", requestID, "error", err)
		return transportFailure(err)
	}

	c.log.Debug(ctx, "request finished",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	return Outcome{
		Kind: OutcomeSuccess,
		Response: &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		},
	}
}

func (c *APIClient) newRequest(ctx context.Context, path string, opts RequestOptions, token string) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, opts.Query), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	req.Header.Set(common.AcceptHeaderName, common.JSONContentType)
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	for name, values := range opts.Header {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	return req, nil
}

func (c *APIClient) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}
