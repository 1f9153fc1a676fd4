// Package api is the HTTP client of the Ishakiro backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ishakiro/internal/domain"
	"ishakiro/internal/ports/output"
)

const tracerName = "ishakiro/internal/adapters/api"

// Client issues authorized JSON requests against one base URL.
// It reads the session token on every call and never mutates client state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     output.TokenSource
	logger     *slog.Logger
	tracer     trace.Tracer

	Auth      *AuthResource
	Items     *ItemsResource
	Messages  *MessagesResource
	Admin     *AdminResource
	Anonymous *AnonymousResource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens output.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthResource{c: c}
	c.Items = &ItemsResource{c: c}
	c.Messages = &MessagesResource{c: c}
	c.Admin = &AdminResource{c: c}
	c.Anonymous = &AnonymousResource{c: c}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// descriptor is one outgoing request.
type descriptor struct {
	method      string
	body        []byte
	contentType string
	headers     http.Header
	anonymous   bool
	err         error
}

// RequestOption shapes a request descriptor.
type RequestOption func(*descriptor)

// WithMethod sets the HTTP method (default GET).
func WithMethod(method string) RequestOption {
	return func(d *descriptor) { d.method = method }
}

// WithJSONBody encodes v as the JSON request body.
func WithJSONBody(v any) RequestOption {
	return func(d *descriptor) {
		data, err := json.Marshal(v)
		if err != nil {
			d.err = fmt.Errorf("encode request body: %w", err)
			return
		}
		d.body = data
		d.contentType = "application/json"
	}
}

// WithFormBody sends values as application/x-www-form-urlencoded.
func WithFormBody(values url.Values) RequestOption {
	return func(d *descriptor) {
		d.body = []byte(values.Encode())
		d.contentType = "application/x-www-form-urlencoded"
	}
}

// WithHeader sets a header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(d *descriptor) { d.headers.Set(key, value) }
}

// WithoutAuth omits the Authorization header even when a token is present.
func WithoutAuth() RequestOption {
	return func(d *descriptor) { d.anonymous = true }
}

// Request sends a request to baseURL+endpoint and returns the raw JSON body of a 2xx response.
// Non-2xx responses fail with *domain.RequestError, unreachable servers with *domain.ConnectionError.
func (c *Client) Request(ctx context.Context, endpoint string, opts ...RequestOption) (json.RawMessage, error) {
	d := &descriptor{
		method:      http.MethodGet,
		contentType: "application/json",
		headers:     http.Header{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.err != nil {
		return nil, d.err
	}

	ctx, span := c.tracer.Start(ctx, "api "+d.method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", d.method),
			attribute.String("url.path", endpoint),
		),
	)
	defer span.End()

	raw, status, err := c.do(ctx, endpoint, d)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, endpoint string, d *descriptor) (json.RawMessage, int, error) {
	var body io.Reader
	if d.body != nil {
		body = bytes.NewReader(d.body)
	}
	req, err := http.NewRequestWithContext(ctx, d.method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request %s %s: %w", d.method, endpoint, err)
	}

	req.Header.Set("Content-Type", d.contentType)
	for key, values := range d.headers {
		req.Header[key] = values
	}
	if !d.anonymous && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		c.logger.Warn("api: transport failure", "method", d.method, "endpoint", endpoint, "error", err)
		return nil, 0, &domain.ConnectionError{BaseURL: c.baseURL, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &domain.ConnectionError{BaseURL: c.baseURL, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := responseError(resp.StatusCode, data)
		c.logger.Debug("api: request failed", "method", d.method, "endpoint", endpoint, "status", resp.StatusCode, "error", reqErr.Message)
		return nil, resp.StatusCode, reqErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, nil
	}
	if !json.Valid(data) {
		return nil, resp.StatusCode, fmt.Errorf("decode response %s %s: invalid JSON body", d.method, endpoint)
	}
	return json.RawMessage(data), resp.StatusCode, nil
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

// responseError turns a non-2xx response into a RequestError.
// detail wins over message; an unparseable body falls back to a fixed text per status.
func responseError(status int, data []byte) *domain.RequestError {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &domain.RequestError{Status: status, Message: domain.StatusMessage(status)}
	}
	for _, field := range []json.RawMessage{body.Detail, body.Message} {
		if text := fieldText(field); text != "" {
			return &domain.RequestError{Status: status, Message: text, Detail: text}
		}
	}
	return &domain.RequestError{Status: status, Message: domain.MsgSomethingWentWrong}
}

// fieldText returns a string field verbatim and any other non-empty JSON value compacted.
func fieldText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("false")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// IsRequestError reports whether err is a backend HTTP error with the given status.
func IsRequestError(err error, status int) bool {
	var reqErr *domain.RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}
