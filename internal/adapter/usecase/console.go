package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"ad-console/internal/core/analytics"
	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
	"ad-console/internal/core/tracking"
	"ad-console/internal/core/vast"
)

// ClientFactory builds an ad server client bound to the given base URL.
// The console constructs a client per operation so a settings change
// takes effect on the next call, never retroactively.
type ClientFactory func(baseURL string) port.AdServer

// Console implements port.Console. It orchestrates the settings service,
// the upstream client and the pure data-shaping packages into the view
// models the admin UI renders.
type Console struct {
	settings  port.Settings
	newClient ClientFactory
	logger    *slog.Logger
	now       func() time.Time
}

// NewConsole creates the console usecase.
func NewConsole(settings port.Settings, newClient ClientFactory, logger *slog.Logger) *Console {
	return &Console{
		settings:  settings,
		newClient: newClient,
		logger:    logger,
		now:       time.Now,
	}
}

// client builds an upstream client against the base URL in effect right
// now.
func (c *Console) client(ctx context.Context) port.AdServer {
	return c.newClient(c.settings.Get(ctx))
}

func (c *Console) Sessions(ctx context.Context, page, limit string) (*domain.SessionPage, error) {
	return c.client(ctx).ListSessions(ctx, page, limit)
}

func (c *Console) SessionDetail(ctx context.Context, id string) (*port.SessionDetail, error) {
	sess, err := c.client(ctx).GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return &port.SessionDetail{
		Session: sess,
		Kind:    vast.DetectKind(sess.Response),
		Ads:     vast.Parse(sess.Response),
	}, nil
}

func (c *Console) SessionEvents(ctx context.Context, id string) (*port.SessionEvents, error) {
	list, err := c.client(ctx).SessionEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	return &port.SessionEvents{
		Events: list.Events,
		Total:  list.Total,
		Groups: tracking.GroupByAd(list.Events),
	}, nil
}

func (c *Console) DeleteSession(ctx context.Context, id string) error {
	if err := c.client(ctx).DeleteSession(ctx, id); err != nil {
		return err
	}
	c.logger.Info("session deleted", slog.String("session_id", id))
	return nil
}

func (c *Console) Track(ctx context.Context, id string, payload map[string]any) error {
	return c.client(ctx).SendTracking(ctx, id, payload)
}

func (c *Console) Generate(ctx context.Context, kind port.GenerateKind, p domain.AdParams, extra url.Values) (*domain.GeneratedAd, error) {
	client := c.client(ctx)
	var (
		ad  *domain.GeneratedAd
		err error
	)
	switch kind {
	case port.GenerateVAST:
		ad, err = client.GenerateVAST(ctx, p)
	case port.GenerateVMAP:
		ad, err = client.GenerateVMAP(ctx, p)
	case port.GenerateFlex:
		ad, err = client.GenerateAd(ctx, extra)
	default:
		return nil, fmt.Errorf("unknown generate kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	ad.Kind = string(vast.DetectKind(ad.XML))
	if ad.SessionID == "" {
		c.logger.Warn("ad generated without session id header")
	}
	return ad, nil
}

func (c *Console) Overview(ctx context.Context) (*analytics.Overview, error) {
	page, err := c.client(ctx).ListSessions(ctx, "", "")
	if err != nil {
		return nil, err
	}
	return analytics.Compute(c.now(), page.Data), nil
}

func (c *Console) Health(ctx context.Context) bool {
	return c.client(ctx).Health(ctx)
}
