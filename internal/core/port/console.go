package port

import (
	"context"
	"net/url"

	"ad-console/internal/core/analytics"
	"ad-console/internal/core/domain"
	"ad-console/internal/core/vast"
)

// GenerateKind selects which upstream generation endpoint to call.
type GenerateKind string

const (
	GenerateVAST GenerateKind = "vast"
	GenerateVMAP GenerateKind = "vmap"
	GenerateFlex GenerateKind = "ad"
)

// SessionDetail is the view model for a single session: the raw record
// plus everything derived from its response document. Ads are derived
// fresh on every call and never cached across sessions.
type SessionDetail struct {
	Session *domain.Session `json:"session"`
	Kind    vast.Kind       `json:"kind"`
	Ads     []vast.Ad       `json:"ads"`
}

// SessionEvents is the view model for a session's tracking events: the
// flat list as received plus the per-ad chronological grouping. Group
// keys that match no parsed ad are intentionally kept; the UI shows them
// as unmatched groups.
type SessionEvents struct {
	Events []domain.TrackingEvent            `json:"events"`
	Total  int                               `json:"total"`
	Groups map[string][]domain.TrackingEvent `json:"groups"`
}

// Console is the primary inbound port: every view of the admin UI is
// served through one of these operations. Mutations are never retried.
type Console interface {
	// Sessions lists recorded sessions, passing the upstream pagination
	// envelope through unchanged.
	Sessions(ctx context.Context, page, limit string) (*domain.SessionPage, error)
	// SessionDetail fetches one session and derives its parsed ad list
	// and response kind.
	SessionDetail(ctx context.Context, id string) (*SessionDetail, error)
	// SessionEvents fetches the session's tracking events and groups
	// them by ad.
	SessionEvents(ctx context.Context, id string) (*SessionEvents, error)
	// DeleteSession removes a session upstream.
	DeleteSession(ctx context.Context, id string) error
	// Track relays a tracking event payload into the session.
	Track(ctx context.Context, id string, payload map[string]any) error
	// Generate requests a new ad document of the given kind. For the
	// flexible kind the extra values are forwarded verbatim and p is
	// ignored.
	Generate(ctx context.Context, kind GenerateKind, p domain.AdParams, extra url.Values) (*domain.GeneratedAd, error)
	// Overview aggregates analytics over a freshly fetched session list.
	Overview(ctx context.Context) (*analytics.Overview, error)
	// Health reports whether the ad server is reachable and healthy.
	Health(ctx context.Context) bool
}
