// Package httpapi holds the HTTP plumbing shared by the courier adapters:
// authentication header strategies, JSON request helpers, credential-probe
// status tables and a logging transport.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Auth sets the authentication headers of an outgoing request.
type Auth func(h http.Header)

// Bearer authenticates with "Authorization: Bearer <token>".
func Bearer(token string) Auth {
	return func(h http.Header) {
		h.Set("Authorization", "Bearer "+token)
	}
}

// Token authenticates with "Authorization: Token <token>".
func Token(token string) Auth {
	return func(h http.Header) {
		h.Set("Authorization", "Token "+token)
	}
}

// Headers authenticates with fixed header values, such as an id/token pair.
func Headers(values map[string]string) Auth {
	return func(h http.Header) {
		for k, v := range values {
			h.Set(k, v)
		}
	}
}

// Config describes one upstream API.
type Config struct {
	Provider  string
	BaseURL   string
	Auth      Auth
	UserAgent string
}

// Client sends JSON requests to one upstream API.
type Client struct {
	config     Config
	httpClient courier.HTTPDoer
	logger     *otelzap.Logger
	tracer     trace.Tracer
}

// New creates a client for cfg using the shared dependencies.
func New(cfg Config, deps courier.Deps) *Client {
	deps = deps.WithDefaults()
	if cfg.UserAgent == "" {
		cfg.UserAgent = deps.UserAgent
	}
	return &Client{
		config:     cfg,
		httpClient: deps.HTTPClient,
		logger:     deps.Logger,
		tracer:     deps.Tracer,
	}
}

// Provider returns the provider name errors are attributed to.
func (c *Client) Provider() string {
	return c.config.Provider
}

// BaseURL returns the upstream base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Response is a fully read upstream response.
type Response struct {
	Provider   string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsEmpty reports whether the body is empty once whitespace is trimmed.
func (r *Response) IsEmpty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

// BodyString returns the body with surrounding whitespace trimmed.
func (r *Response) BodyString() string {
	return string(bytes.TrimSpace(r.Body))
}

// Decode unmarshals the JSON body into v. A malformed body is reported as
// an HTTP error.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return courier.NewHTTPError(r.Provider, r.StatusCode, "failed to decode response body").WithCause(err)
	}
	return nil
}

// UnexpectedStatus builds the error returned for a status outside an
// operation's documented set.
func (r *Response) UnexpectedStatus() *courier.CourierError {
	msg := fmt.Sprintf("unexpected status %d", r.StatusCode)
	if detail := upstreamMessage(r.Body); detail != "" {
		msg += ": " + detail
	}
	return courier.NewHTTPError(r.Provider, r.StatusCode, msg)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with body encoded as JSON. A nil body sends
// no payload.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Do performs one request and reads the whole response. Any status is
// returned to the caller; only transport and encoding failures are errors.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	endpoint := c.endpoint(path, query)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("courier.%s.%s", c.config.Provider, method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("courier.provider", c.config.Provider),
			attribute.String("http.method", method),
			attribute.String("http.url", endpoint),
		),
	)
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(span, courier.NewHTTPError(c.config.Provider, 0, "failed to marshal request body").WithCause(err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, c.fail(span, courier.NewHTTPError(c.config.Provider, 0, "failed to create request").WithCause(err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.Auth != nil {
		c.config.Auth(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Ctx(ctx).Error("Upstream request failed",
			zap.String("provider", c.config.Provider),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, c.fail(span, courier.NewHTTPError(c.config.Provider, 0, "request failed").WithCause(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(span, courier.NewHTTPError(c.config.Provider, resp.StatusCode, "failed to read response body").WithCause(err))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	return &Response{
		Provider:   c.config.Provider,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// upstreamMessage extracts a human readable message from an error body.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Detail != "":
			return parsed.Detail
		case parsed.Error != nil:
			return fmt.Sprint(parsed.Error)
		}
	}

	s := strings.TrimSpace(string(body))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}
