package port

import "context"

// SettingsStore persists the single configuration value this system
// keeps: the ad server base URL. Load returns an empty string without
// error when nothing has been stored yet.
type SettingsStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, baseURL string) error
}

// Settings is the configuration surface: the current base URL with
// validation, persistence and connectivity probing. Writes are
// last-writer-wins; only user actions mutate the value.
type Settings interface {
	// Get returns the current base URL: the persisted value, falling
	// back to the build-time default, falling back to empty.
	Get(ctx context.Context) string
	// Set normalises (trim, strip one trailing slash) and persists the
	// URL, making it current for all subsequent calls. In-flight
	// requests are unaffected.
	Set(ctx context.Context, rawURL string) (string, error)
	// IsValid reports whether the string is an absolute http or https
	// URL.
	IsValid(rawURL string) bool
	// TestConnection probes the URL with a single GET. It fails closed:
	// invalid URLs, transport errors and non-2xx statuses are all false.
	TestConnection(ctx context.Context, rawURL string) bool
	// ResetToDefault restores and persists the build-time default,
	// overwriting any user-set value.
	ResetToDefault(ctx context.Context) (string, error)
}
