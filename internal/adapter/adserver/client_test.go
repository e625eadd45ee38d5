package adserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, NewHTTPClient(2*time.Second))
}

func TestListSessions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sessions", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		prev := 1
		json.NewEncoder(w).Encode(domain.SessionPage{
			PreviousPage: &prev,
			CurrentPage:  2,
			TotalPages:   2,
			Limit:        10,
			TotalItems:   12,
			Data: []domain.Session{
				{SessionID: "s1", Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
				{SessionID: "s2", ClientRequest: domain.ClientRequest{"dur": "30"}},
			},
		})
	})

	page, err := c.ListSessions(context.Background(), "2", "10")
	require.NoError(t, err)
	require.NotNil(t, page.PreviousPage)
	assert.Equal(t, 1, *page.PreviousPage)
	assert.Nil(t, page.NextPage)
	assert.Equal(t, 12, page.TotalItems)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "30", page.Data[1].ClientRequest["dur"])
}

func TestGetSessionNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "session missing"})
	})

	_, err := c.GetSession(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrNotFound))

	var upstream *port.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "session missing", upstream.Message)
}

func TestDeleteSessionForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusForbidden)
	})

	err := c.DeleteSession(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrForbidden))
}

func TestSessionEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sessions/s1/events", r.URL.Path)
		json.NewEncoder(w).Encode(domain.EventList{
			Events: []domain.TrackingEvent{{Type: "start", OnAd: "a1", IssuedAt: "2024-01-01T00:00:01Z"}},
			Total:  1,
		})
	})

	list, err := c.SessionEvents(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Events, 1)
	assert.Equal(t, "a1", list.Events[0].OnAd)
}

func TestSendTracking(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sessions/s1/tracking", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := c.SendTracking(context.Background(), "s1", map[string]any{"type": "start", "onAd": "a1"})
	require.NoError(t, err)
	assert.Equal(t, "start", got["type"])
}

func TestGenerateVAST(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/vast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("c"))
		assert.Equal(t, "30", q.Get("dur"))
		assert.Equal(t, "u1", q.Get("uid"))
		assert.Empty(t, q.Get("bp"), "vmap-only parameters must not leak into vast calls")

		w.Header().Set("x-session-id", "sess-123")
		w.Write([]byte(`<VAST version="4.0"></VAST>`))
	})

	ad, err := c.GenerateVAST(context.Background(), domain.AdParams{
		Consent:     true,
		Duration:    "30",
		UserID:      "u1",
		Breakpoints: "300,600",
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-123", ad.SessionID)
	assert.Contains(t, ad.XML, "<VAST")
}

func TestGenerateVMAPParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/vmap", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "300,600", q.Get("bp"))
		assert.Equal(t, "true", q.Get("prr"))
		assert.Empty(t, q.Get("por"))
		w.Header().Set("x-session-id", "sess-9")
		w.Write([]byte(`<vmap:VMAP></vmap:VMAP>`))
	})

	ad, err := c.GenerateVMAP(context.Background(), domain.AdParams{Breakpoints: "300,600", Preroll: true})
	require.NoError(t, err)
	assert.Equal(t, "sess-9", ad.SessionID)
}

// An absent x-session-id header yields an empty session id, not an
// error.
func TestGenerateMissingSessionHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<VAST></VAST>`))
	})

	ad, err := c.GenerateVAST(context.Background(), domain.AdParams{})
	require.NoError(t, err)
	assert.Equal(t, "", ad.SessionID)
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, c.Health(context.Background()))
}

func TestHealthSwallowsErrors(t *testing.T) {
	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, failing.Health(context.Background()))

	unreachable := NewClient("http://127.0.0.1:1", NewHTTPClient(200*time.Millisecond))
	assert.False(t, unreachable.Health(context.Background()))
}

func TestUpstreamErrorFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	})

	_, err := c.ListSessions(context.Background(), "", "")
	var upstream *port.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), upstream.Message)
}
