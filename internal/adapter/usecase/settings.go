package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"ad-console/internal/core/port"
)

// Settings is the single source of truth for the ad server base URL. The
// persisted value wins over the build-time default; an unset store falls
// back to the default, which may itself be empty. The in-memory current
// value is a cache over the store; writes are last-writer-wins, which is
// acceptable because only operator actions mutate it.
type Settings struct {
	store      port.SettingsStore
	defaultURL string
	httpc      *http.Client
	logger     *slog.Logger

	mu      sync.RWMutex
	current string
	loaded  bool
}

// NewSettings creates the settings service. defaultURL is the build-time
// default used when the store holds nothing. httpc is used only for
// connection probes and should carry the standard call timeout.
func NewSettings(store port.SettingsStore, defaultURL string, httpc *http.Client, logger *slog.Logger) *Settings {
	return &Settings{
		store:      store,
		defaultURL: normalizeURL(defaultURL),
		httpc:      httpc,
		logger:     logger,
	}
}

// Get returns the current base URL, loading the persisted value on first
// use. A store read failure falls back to the default rather than
// blocking every caller.
func (s *Settings) Get(ctx context.Context) string {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.current
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.current
	}
	stored, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("settings load failed, using default", slog.Any("error", err))
		stored = ""
	}
	s.current = stored
	if s.current == "" {
		s.current = s.defaultURL
	}
	s.loaded = true
	return s.current
}

// Set normalises and persists the URL and makes it the current value for
// all subsequent calls. In-flight requests keep the base URL they were
// constructed with.
func (s *Settings) Set(ctx context.Context, rawURL string) (string, error) {
	clean := normalizeURL(rawURL)
	if err := s.store.Save(ctx, clean); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.current = clean
	s.loaded = true
	s.mu.Unlock()
	return clean, nil
}

// IsValid reports whether the string parses as an absolute URL with an
// http or https scheme. Relative and malformed URLs are invalid.
func (s *Settings) IsValid(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TestConnection probes the URL with a single unauthenticated GET and no
// retry. It fails closed: an invalid URL never reaches the network, and
// any transport error or non-2xx status is false.
func (s *Settings) TestConnection(ctx context.Context, rawURL string) bool {
	if !s.IsValid(rawURL) {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalizeURL(rawURL), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.httpc.Do(req)
	if err != nil {
		s.logger.Debug("connection test failed", slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// ResetToDefault restores the build-time default, persisting it over any
// user-set value.
func (s *Settings) ResetToDefault(ctx context.Context) (string, error) {
	if err := s.store.Save(ctx, s.defaultURL); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.current = s.defaultURL
	s.loaded = true
	s.mu.Unlock()
	return s.defaultURL, nil
}

// normalizeURL trims whitespace and strips exactly one trailing slash.
func normalizeURL(rawURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
}
