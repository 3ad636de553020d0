package prism

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/metrics"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// defaultPageSize is the number of entities requested per list call.
const defaultPageSize = 250

// RealClient implements PrismManager using the Prism Central v3 REST API.
type RealClient struct {
	baseURL    string
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
	timeouts   *config.Timeouts
	metrics    *metrics.Recorder
	readOnly   bool
	pageSize   int
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API root (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *RealClient) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

// WithMetrics records every request on r.
func WithMetrics(r *metrics.Recorder) ClientOption {
	return func(c *RealClient) {
		c.metrics = r
	}
}

// WithReadOnly makes the client refuse every mutating request.
func WithReadOnly() ClientOption {
	return func(c *RealClient) {
		c.readOnly = true
	}
}

// WithPageSize sets the number of entities fetched per list request.
func WithPageSize(n int) ClientOption {
	return func(c *RealClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(cfg *config.Config, opts ...ClientOption) *RealClient {
	timeouts := cfg.Timeouts
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}

	hc := cleanhttp.DefaultPooledClient()
	if transport, ok := hc.Transport.(*http.Transport); ok {
		// #nosec G402 -- Prism Central uses a self-signed certificate by default
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS,
			MinVersion:         tls.VersionTLS12,
		}
	}
	hc.Timeout = timeouts.Request

	c := &RealClient{
		baseURL:    cfg.BaseURL(),
		endpoint:   cfg.Endpoint(),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: hc,
		timeouts:   timeouts,
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadOnly reports whether mutating requests are refused.
func (c *RealClient) ReadOnly() bool {
	return c.readOnly
}

// Connect verifies that Prism Central is reachable and accepts the
// credentials. Any failure is a *ConnectivityError.
func (c *RealClient) Connect(ctx context.Context) error {
	var me struct {
		Status struct {
			Name string `json:"name"`
		} `json:"status"`
	}
	err := c.do(ctx, http.MethodGet, "users/me", nil, &me)
	if err == nil {
		return nil
	}

	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return connErr
	}
	if IsUnauthorized(err) {
		return &ConnectivityError{Endpoint: c.endpoint, Err: fmt.Errorf("credentials rejected: %w", err)}
	}
	return &ConnectivityError{Endpoint: c.endpoint, Err: err}
}

// isMutating reports whether a request changes state. The v3 API uses POST
// for list queries, which are reads.
func isMutating(method, path string) bool {
	if method == http.MethodGet {
		return false
	}
	return !strings.HasSuffix(path, "/list")
}

// resourceOf returns the first path segment, used as the metrics label.
func resourceOf(path string) string {
	resource, _, _ := strings.Cut(path, "/")
	return resource
}

// do performs one request. A nil body sends no payload; a nil out discards
// the response body.
func (c *RealClient) do(ctx context.Context, method, path string, body, out any) error {
	mutating := isMutating(method, path)
	if mutating && c.readOnly {
		return fmt.Errorf("%s %s: %w", method, path, ErrReadOnly)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.username, c.password)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, resourceOf(path), mutating, 0, time.Since(start).Seconds())
		return &ConnectivityError{Endpoint: c.endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.metrics.ObserveRequest(method, resourceOf(path), mutating, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return &ConnectivityError{Endpoint: c.endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

type listRequest struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Filter string `json:"filter,omitempty"`
}

// fiqlEscaper percent-encodes the characters FIQL reserves for operators
// and grouping, so a value always parses as a single literal.
var fiqlEscaper = strings.NewReplacer(
	"%", "%25",
	",", "%2C",
	";", "%3B",
	"(", "%28",
	")", "%29",
	"=", "%3D",
	"!", "%21",
	"<", "%3C",
	">", "%3E",
)

// equalsFilter builds an attr==value filter with the value escaped.
func equalsFilter(attr, value string) string {
	return attr + "==" + fiqlEscaper.Replace(value)
}

// list pages through a v3 list endpoint and returns every entity.
func (c *RealClient) list(ctx context.Context, path, kind, filter string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	offset := 0

	for {
		var page listResponse
		req := listRequest{Kind: kind, Offset: offset, Length: c.pageSize, Filter: filter}
		if err := c.do(ctx, http.MethodPost, path, req, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Entities...)
		offset += len(page.Entities)

		if len(page.Entities) == 0 || offset >= page.Metadata.TotalMatches {
			return all, nil
		}
	}
}

// mutate sends a create or update request and waits for the resulting task.
func (c *RealClient) mutate(ctx context.Context, method, path string, body any) (*mutationResponse, error) {
	var resp mutationResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}

	if strings.EqualFold(resp.Status.State, "ERROR") {
		var msgs []string
		for _, m := range resp.Status.MessageList {
			msgs = append(msgs, strings.TrimSpace(m.Reason+" "+m.Message))
		}
		return nil, fmt.Errorf("%s %s rejected: %s", method, path, strings.Join(msgs, "; "))
	}

	if taskUUID := resp.Status.ExecutionContext.TaskUUID; taskUUID != "" {
		if err := c.WaitForTask(ctx, taskUUID); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}
