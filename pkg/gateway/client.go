package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// CredentialSource supplies the credentials attached to outgoing requests.
// It is read at dispatch time, never cached, so a login or logout between
// two calls is visible to the second call.
type CredentialSource interface {
	// Token returns the bearer token; empty means unauthenticated.
	Token() string

	// SessionAccessKey returns the session-scoped access key; empty means
	// none is configured.
	SessionAccessKey() string
}

// Notifier receives the user-visible failure notifications the pipeline
// emits. Every failed request produces exactly one call.
type Notifier interface {
	Error(msg string)
}

// Client dispatches requests against the gateway API, attaching credentials
// per the session state and decoding response envelopes.
type Client struct {
	httpClient    *http.Client
	config        Config
	creds         CredentialSource
	notifier      Notifier
	onAuthFailure func()
	logger        *slog.Logger
}

// ClientOption customizes a Client at construction time.
type ClientOption func(*Client)

// WithNotifier sets the notification surface for request failures.
func WithNotifier(n Notifier) ClientOption {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithAuthFailureHandler sets the handler invoked when a request fails with
// a 401, either as an envelope code or a transport status. The handler is
// called exactly once per failing request, before the failure propagates to
// the caller; it is where session invalidation and the forced navigation to
// the login view are wired in.
func WithAuthFailureHandler(fn func()) ClientOption {
	return func(c *Client) {
		c.onAuthFailure = fn
	}
}

// NewClient creates a gateway API client. creds may be nil, in which case
// requests are dispatched without credentials.
func NewClient(config Config, creds CredentialSource, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.AccessKeyHeader == "" {
		config.AccessKeyHeader = DefaultAccessKeyHeader
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		creds:  creds,
		logger: logger.With("component", "gateway-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Do dispatches one request and returns the envelope data payload.
//
// The pipeline has two explicit stages around the transport call:
// beforeSend attaches credentials from the live session, afterReceive
// interprets the envelope and performs the mandatory failure side effects
// (notification, auth-failure handler) before the error is returned.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	op := method + " " + path
	o := buildOptions(opts)

	req, err := c.newRequest(ctx, method, path, body, o)
	if err != nil {
		return nil, wrapError(op, err)
	}

	c.beforeSend(req, o)

	c.logger.Debug("request", "method", method, "path", path, "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(op, 0, "", err)
	}
	defer resp.Body.Close()

	return c.afterReceive(op, resp)
}

// newRequest builds the outgoing request with URL, query, body, and any
// caller-supplied headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, o requestOptions) (*http.Request, error) {
	url := c.config.BaseURL + path
	if len(o.params) > 0 {
		url += "?" + o.params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range o.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("X-Request-ID", "req_"+uuid.New().String()[:8])

	return req, nil
}

// beforeSend attaches credentials read from the session at dispatch time.
// The access-key marker is consumed here; only the configured header name
// reaches the wire.
func (c *Client) beforeSend(req *http.Request, o requestOptions) {
	if c.creds == nil {
		return
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if o.useAccessKey {
		if key := c.creds.SessionAccessKey(); key != "" {
			req.Header.Set(c.config.AccessKeyHeader, key)
		}
	}
}

// afterReceive interprets one response: envelope decode on success paths,
// best-effort message extraction on transport failures.
func (c *Client) afterReceive(op string, resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, 0, "", fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("response", "status", resp.StatusCode, "bytes", len(body))

	env, envErr := decodeEnvelope(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the structured message embedded in the error body.
		msg := resp.Status
		code := resp.StatusCode
		if envErr == nil && env.Message != "" {
			msg = env.Message
			if env.Code != 0 {
				code = env.Code
			}
		} else if m := embeddedMessage(body); m != "" {
			msg = m
		}
		return nil, c.fail(op, code, msg, nil)
	}

	if envErr != nil {
		return nil, c.fail(op, resp.StatusCode, "malformed response", envErr)
	}

	if !env.OK() {
		return nil, c.fail(op, env.Code, env.Message, nil)
	}

	return env.Data, nil
}

// fail builds the error for a failed request and performs the mandatory
// side effects: one notification, and the auth-failure handler when the
// code is 401. The failure still propagates to the caller.
func (c *Client) fail(op string, code int, message string, err error) error {
	var gerr *Error
	if err != nil {
		gerr = wrapError(op, err)
		gerr.Code = code
	} else {
		gerr = newError(op, code, message)
	}

	if c.notifier != nil {
		c.notifier.Error(gerr.Message)
	}
	if code == CodeUnauthorized && c.onAuthFailure != nil {
		c.onAuthFailure()
	}

	return gerr
}

// embeddedMessage pulls a top-level message field out of a structured error
// body, if there is one.
func embeddedMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &m) == nil {
		return m.Message
	}
	return ""
}

// Get performs a GET request and decodes the envelope data into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with an optional JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with an optional JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Delete performs a DELETE request.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return request[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

func request[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var zero T
	data, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return zero, err
	}
	return UnmarshalData[T](data)
}
