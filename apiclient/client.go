package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/hawk"
	"github.com/vitalvas/forthecity/query"
)

// Client is a Hawk-signing Collection+JSON API client. It is safe for
// concurrent use.
type Client struct {
	base   string
	cfg    Config
	creds  *hawk.RotatingCredentials
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. Credentials and the base URL are checked here,
// so a misconfigured client fails before any request is made.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	creds := cfg.Credentials()
	if err := creds.Validate(); err != nil {
		return nil, &Error{Kind: KindRequest, Err: err}
	}

	base, err := cfg.BaseURL()
	if err != nil {
		return nil, &Error{Kind: KindRequest, Err: err}
	}

	c := &Client{
		base:   base,
		cfg:    cfg,
		creds:  hawk.NewRotatingCredentials(creds),
		logger: cfg.Logger,
	}

	c.http = &http.Client{
		Transport: hawk.NewTransport(cfg.Transport, hawk.SignConfig{
			Credentials:     c.creds,
			LocaltimeOffset: cfg.LocaltimeOffset,
			HashPayload:     cfg.HashPayload,
		}),
		Timeout: cfg.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return c, nil
}

// BaseURL returns the scheme, host and port requests are sent to.
func (c *Client) BaseURL() string {
	return c.base
}

// Rotate replaces the credentials used for subsequent requests. Invalid
// credentials are rejected and the current ones are kept.
func (c *Client) Rotate(creds hawk.Credentials) error {
	if creds.Algorithm == "" {
		creds.Algorithm = hawk.AlgorithmSHA256
	}

	if err := creds.Validate(); err != nil {
		return &Error{Kind: KindRequest, Err: err}
	}

	c.creds.Rotate(creds)

	return nil
}

// Request is a logical API request.
type Request struct {
	// Method is the HTTP method. Required.
	Method string

	// Path is the request path below the base URL, e.g.
	// "/api/opportunities/1". Required.
	Path string

	// Query is appended to the URL when it has parameters.
	Query *query.Values

	// Template is sent as the write body when set. Its entries also become
	// the Hawk ext attribute.
	Template *collection.Template
}

// Response is the outcome of one round trip. It is returned for every
// request that was sent, whether or not a response was obtained.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// TransportError is set when no response was obtained.
	TransportError error

	// RequestID is the id sent with the request.
	RequestID string

	Duration time.Duration
}

// IsSuccess reports whether status is a logical success: its leading
// digit is 2 or 3.
func IsSuccess(status int) bool {
	if status <= 0 {
		return false
	}

	for status >= 10 {
		status /= 10
	}

	return status == 2 || status == 3
}

// Success reports whether the response was obtained and classified as a
// logical success.
func (r *Response) Success() bool {
	return r != nil && r.TransportError == nil && IsSuccess(r.StatusCode)
}

// Document parses the body as Collection+JSON.
func (r *Response) Document() (*collection.Document, error) {
	return collection.Parse(r.Body)
}

// Do sends req once. The returned error is only set for requests that
// could not be built or signed; those never reach the network. Transport
// failures are reported in Response.TransportError and status codes are
// not interpreted.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" || req.Path == "" {
		return nil, &Error{Kind: KindRequest, Err: hawk.ErrInvalidRequestSpec}
	}

	target := c.base + req.Path
	if req.Query.Len() > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Template != nil {
		payload, err := req.Template.Body()
		if err != nil {
			return nil, &Error{Kind: KindRequest, Err: err}
		}

		body = bytes.NewReader(payload)
		ctx = hawk.ContextWithExt(ctx, ExtFromTemplate(req.Template).String())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Err: fmt.Errorf("%w: %w", hawk.ErrInvalidRequestSpec, err)}
	}

	resp := &Response{RequestID: requestID(ctx)}

	httpReq.Header.Set("api-version", c.cfg.APIVersion)
	httpReq.Header.Set("Accept", collection.MediaType)
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set(c.cfg.RequestIDHeader, resp.RequestID)

	if body != nil {
		httpReq.Header.Set("Content-Type", collection.MediaType)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	resp.Duration = time.Since(start)

	if err != nil {
		if isRequestError(err) {
			return nil, &Error{Kind: KindRequest, Err: err}
		}

		resp.TransportError = err
		c.logger.WarnContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("url", target),
			slog.String("request_id", resp.RequestID),
			slog.Duration("duration", resp.Duration),
			slog.Any("error", err),
		)

		return resp, nil
	}

	defer httpResp.Body.Close()

	resp.StatusCode = httpResp.StatusCode
	resp.Header = httpResp.Header

	if resp.Body, err = io.ReadAll(httpResp.Body); err != nil {
		resp.TransportError = err
	}

	resp.Duration = time.Since(start)

	c.logger.DebugContext(ctx, "request",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", resp.RequestID),
		slog.Duration("duration", resp.Duration),
	)

	return resp, nil
}

// isRequestError reports whether err was raised while signing, before the
// request was sent.
func isRequestError(err error) bool {
	return errors.Is(err, hawk.ErrInvalidRequestSpec) ||
		errors.Is(err, hawk.ErrMissingCredentials) ||
		errors.Is(err, hawk.ErrUnknownAlgorithm) ||
		errors.Is(err, hawk.ErrNoCredentials)
}

// fetch sends req and interprets the response. A nil document with a nil
// error means a logical success with an empty body.
func (c *Client) fetch(ctx context.Context, req Request) (*collection.Document, *Response, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if resp.TransportError != nil {
		return nil, resp, &Error{Kind: KindTransport, Response: resp, Err: resp.TransportError}
	}

	if !resp.Success() {
		failure := &Error{Kind: KindLogical, Response: resp}
		if doc, err := resp.Document(); err == nil {
			failure.Failure = doc.Failure()
		}

		return nil, resp, failure
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, resp, nil
	}

	doc, err := resp.Document()
	if err != nil {
		return nil, resp, &Error{Kind: KindSchema, Response: resp, Err: err}
	}

	return doc, resp, nil
}
