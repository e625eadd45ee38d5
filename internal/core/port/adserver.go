package port

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"ad-console/internal/core/domain"
)

var (
	// ErrNotFound reports that the requested session does not exist
	// upstream.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports that the ad server refused the operation.
	ErrForbidden = errors.New("forbidden")
)

// UpstreamError is an HTTP error status returned by the ad server. The
// message is the server-provided one when the error body carried any,
// a generic status text otherwise. It matches ErrNotFound and
// ErrForbidden through errors.Is for 404 and 403 responses.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ad server responded %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

// AdServer is the outbound port to the upstream ad-decisioning server.
// Implementations are constructed per call with the base URL in effect
// at that moment, so a configuration change applies to the next call and
// never retroactively to in-flight ones. No operation retries; transport
// and status errors propagate unchanged except for Health, which swallows
// everything into false.
type AdServer interface {
	// ListSessions returns one page of recorded sessions. The page and
	// limit values are forwarded verbatim when non-empty; the server
	// applies its own defaults otherwise.
	ListSessions(ctx context.Context, page, limit string) (*domain.SessionPage, error)
	// GetSession returns the full session record. A missing session
	// yields an error matching ErrNotFound.
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// DeleteSession removes a session. Errors match ErrNotFound or
	// ErrForbidden depending on the server response.
	DeleteSession(ctx context.Context, id string) error
	// SessionEvents returns the tracking events recorded for a session.
	SessionEvents(ctx context.Context, id string) (*domain.EventList, error)
	// SendTracking relays a tracking event payload to the session's
	// tracking endpoint. Fire-and-forget: the response body is ignored.
	SendTracking(ctx context.Context, id string, payload map[string]any) error
	// GenerateVAST requests a new VAST document. The returned session id
	// is empty when the server sent no x-session-id header.
	GenerateVAST(ctx context.Context, p domain.AdParams) (*domain.GeneratedAd, error)
	// GenerateVMAP requests a new VMAP document, accepting the VMAP
	// parameter superset.
	GenerateVMAP(ctx context.Context, p domain.AdParams) (*domain.GeneratedAd, error)
	// GenerateAd requests the flexible ads endpoint with arbitrary
	// parameters passed through untouched.
	GenerateAd(ctx context.Context, params url.Values) (*domain.GeneratedAd, error)
	// Health probes the server's health endpoint. Any error or non-2xx
	// status is false.
	Health(ctx context.Context) bool
}
