package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-console/internal/core/analytics"
	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
	"ad-console/internal/core/vast"
	"ad-console/internal/poller"
)

type fakeConsole struct {
	page    *domain.SessionPage
	detail  *port.SessionDetail
	events  *port.SessionEvents
	ad      *domain.GeneratedAd
	ov      *analytics.Overview
	err     error
	deleted []string
}

func (f *fakeConsole) Sessions(ctx context.Context, page, limit string) (*domain.SessionPage, error) {
	return f.page, f.err
}

func (f *fakeConsole) SessionDetail(ctx context.Context, id string) (*port.SessionDetail, error) {
	return f.detail, f.err
}

func (f *fakeConsole) SessionEvents(ctx context.Context, id string) (*port.SessionEvents, error) {
	return f.events, f.err
}

func (f *fakeConsole) DeleteSession(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeConsole) Track(ctx context.Context, id string, payload map[string]any) error {
	return f.err
}

func (f *fakeConsole) Generate(ctx context.Context, kind port.GenerateKind, p domain.AdParams, extra url.Values) (*domain.GeneratedAd, error) {
	return f.ad, f.err
}

func (f *fakeConsole) Overview(ctx context.Context) (*analytics.Overview, error) {
	return f.ov, f.err
}

func (f *fakeConsole) Health(ctx context.Context) bool { return f.err == nil }

type fakeSettings struct {
	current string
	set     string
}

func (f *fakeSettings) Get(ctx context.Context) string { return f.current }

func (f *fakeSettings) Set(ctx context.Context, rawURL string) (string, error) {
	f.set = rawURL
	f.current = strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	return f.current, nil
}

func (f *fakeSettings) IsValid(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

func (f *fakeSettings) TestConnection(ctx context.Context, rawURL string) bool {
	return f.IsValid(rawURL)
}

func (f *fakeSettings) ResetToDefault(ctx context.Context) (string, error) {
	f.current = "http://default.example"
	return f.current, nil
}

func newTestHandler(console *fakeConsole, settings *fakeSettings) *Handler {
	sessions := poller.New(time.Hour, func(ctx context.Context) (*domain.SessionPage, error) {
		return console.page, nil
	})
	upstream := poller.New(time.Hour, func(ctx context.Context) (bool, error) {
		return true, nil
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(console, settings, sessions, upstream, logger)
}

func doRequest(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestListSessionsRoute(t *testing.T) {
	console := &fakeConsole{page: &domain.SessionPage{CurrentPage: 1, TotalItems: 2, Data: []domain.Session{{SessionID: "s1"}, {SessionID: "s2"}}}}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/sessions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var page domain.SessionPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.TotalItems)
	assert.Nil(t, page.NextPage)
}

func TestSessionDetailRoute(t *testing.T) {
	console := &fakeConsole{detail: &port.SessionDetail{
		Session: &domain.Session{SessionID: "s1", Response: "<VAST/>"},
		Kind:    vast.KindVAST,
		Ads:     []vast.Ad{{ID: "a1", Sequence: 1}},
	}}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/sessions/s1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var detail port.SessionDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, vast.KindVAST, detail.Kind)
	require.Len(t, detail.Ads, 1)
}

func TestSessionNotFound(t *testing.T) {
	console := &fakeConsole{err: &port.UpstreamError{StatusCode: http.StatusNotFound, Message: "session missing"}}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/sessions/nope", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session missing", resp["message"])
}

func TestTransportErrorBecomesBadGateway(t *testing.T) {
	console := &fakeConsole{err: context.DeadlineExceeded}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/sessions", "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ad server connection error", resp["message"])
}

func TestDeleteSessionRoute(t *testing.T) {
	console := &fakeConsole{}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodDelete, "/api/v1/sessions/s1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"s1"}, console.deleted)
}

func TestTrackingRouteRejectsBadJSON(t *testing.T) {
	rec := doRequest(t, newTestHandler(&fakeConsole{}, &fakeSettings{}), http.MethodPost, "/api/v1/sessions/s1/tracking", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRoute(t *testing.T) {
	console := &fakeConsole{ad: &domain.GeneratedAd{SessionID: "s1", Kind: "VAST", XML: "<VAST/>"}}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/generate/vast?dur=30&c=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var ad domain.GeneratedAd
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ad))
	assert.Equal(t, "s1", ad.SessionID)
	assert.Equal(t, "VAST", ad.Kind)
}

func TestOverviewRoute(t *testing.T) {
	console := &fakeConsole{ov: &analytics.Overview{TotalSessions: 5, SessionsByDay: make([]analytics.DayBucket, 7)}}
	rec := doRequest(t, newTestHandler(console, &fakeSettings{}), http.MethodGet, "/api/v1/analytics/overview", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var ov analytics.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Equal(t, 5, ov.TotalSessions)
	assert.Len(t, ov.SessionsByDay, 7)
}

func TestSettingsRoutes(t *testing.T) {
	settings := &fakeSettings{current: "http://default.example"}
	h := newTestHandler(&fakeConsole{}, settings)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/settings/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http://default.example")

	rec = doRequest(t, h, http.MethodPut, "/api/v1/settings/", `{"baseUrl":"https://new.example/"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://new.example", settings.current)

	rec = doRequest(t, h, http.MethodPut, "/api/v1/settings/", `{"baseUrl":"ftp://bad.example"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "https://new.example", settings.current, "invalid urls are rejected before storing")

	rec = doRequest(t, h, http.MethodPost, "/api/v1/settings/test", `{"baseUrl":"https://probe.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reachable":true`)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/settings/reset", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://default.example", settings.current)
}

func TestStatusRoute(t *testing.T) {
	console := &fakeConsole{page: &domain.SessionPage{TotalItems: 3}}
	h := newTestHandler(console, &fakeSettings{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.sessions.Start(ctx)
	h.upstream.Start(ctx)
	defer h.sessions.Stop()
	defer h.upstream.Stop()

	require.Eventually(t, func() bool {
		_, sessionsAt, _ := h.sessions.Snapshot()
		_, upstreamAt, _ := h.upstream.Snapshot()
		return !sessionsAt.IsZero() && !upstreamAt.IsZero()
	}, time.Second, 10*time.Millisecond)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Sessions.TotalItems)
	assert.True(t, resp.Upstream.Healthy)
}

func TestHealthRoute(t *testing.T) {
	rec := doRequest(t, newTestHandler(&fakeConsole{}, &fakeSettings{}), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
