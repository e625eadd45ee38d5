// Package adserver is the outbound HTTP adapter for the upstream
// ad-decisioning server's REST API.
package adserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
	"ad-console/internal/metrics"
)

// sessionIDHeader carries the id of the session a generation call
// created. The server may omit it; an absent header means the session is
// unknown, not an error.
const sessionIDHeader = "x-session-id"

// Client implements port.AdServer against one base URL. Clients are
// cheap: construct one per call with the base URL in effect at that
// moment and share the underlying http.Client.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client bound to baseURL. The http.Client carries
// the fixed per-call timeout; NewHTTPClient builds a suitable one.
func NewClient(baseURL string, httpc *http.Client) *Client {
	return &Client{base: baseURL, http: httpc}
}

// NewHTTPClient returns the shared transport used for all ad server
// calls. There are no retries; the timeout is the only recovery.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (c *Client) ListSessions(ctx context.Context, page, limit string) (*domain.SessionPage, error) {
	q := url.Values{}
	if page != "" {
		q.Set("page", page)
	}
	if limit != "" {
		q.Set("limit", limit)
	}
	var out domain.SessionPage
	if err := c.getJSON(ctx, "list_sessions", "/api/v1/sessions", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var out domain.Session
	if err := c.getJSON(ctx, "get_session", "/api/v1/sessions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/v1/sessions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.do("delete_session", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return upstreamError(resp)
	}
	return nil
}

func (c *Client) SessionEvents(ctx context.Context, id string) (*domain.EventList, error) {
	var out domain.EventList
	if err := c.getJSON(ctx, "session_events", "/api/v1/sessions/"+url.PathEscape(id)+"/events", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendTracking(ctx context.Context, id string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode tracking payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/sessions/"+url.PathEscape(id)+"/tracking", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do("send_tracking", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return upstreamError(resp)
	}
	return nil
}

func (c *Client) GenerateVAST(ctx context.Context, p domain.AdParams) (*domain.GeneratedAd, error) {
	return c.generate(ctx, "generate_vast", "/api/v1/vast", p.Values(false))
}

func (c *Client) GenerateVMAP(ctx context.Context, p domain.AdParams) (*domain.GeneratedAd, error) {
	return c.generate(ctx, "generate_vmap", "/api/v1/vmap", p.Values(true))
}

func (c *Client) GenerateAd(ctx context.Context, params url.Values) (*domain.GeneratedAd, error) {
	return c.generate(ctx, "generate_ad", "/api/v1/ads", params)
}

func (c *Client) Health(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return false
	}
	resp, err := c.do("health", req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

func (c *Client) generate(ctx context.Context, op, path string, params url.Values) (*domain.GeneratedAd, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, upstreamError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ad response: %w", err)
	}
	return &domain.GeneratedAd{
		SessionID: resp.Header.Get(sessionIDHeader),
		XML:       string(body),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return upstreamError(resp)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request and records per-operation metrics. Transport
// errors are wrapped so the caller-facing message names the ad server.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("ad server request: %w", err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode/100)+"xx").Inc()
	return resp, nil
}

// upstreamError maps an error response to a port.UpstreamError, keeping
// the server-provided message when the body carries one.
func upstreamError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			msg = e.Message
		} else if e.Error != "" {
			msg = e.Error
		}
	}
	return &port.UpstreamError{StatusCode: resp.StatusCode, Message: msg}
}
