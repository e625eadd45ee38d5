package configs

import "time"

// Upstream configures how the console reaches the ad server it
// administers. Address is only the build-time default base URL: a value
// persisted through the settings API takes precedence over it, and it
// may be empty when the operator is expected to configure the server
// through the UI first.
type Upstream struct {
	// Address is the default ad server base URL, e.g.
	// "http://localhost:8081". Read once at startup.
	Address string `env:"ADDRESS" envDefault:""`
	// Timeout is the fixed per-call timeout for every ad server
	// request. No call retries; this is the only recovery.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// SessionPollInterval is the cadence of the background session-list
	// refresh feeding the status endpoint.
	SessionPollInterval time.Duration `env:"SESSION_POLL_INTERVAL" envDefault:"60s"`
	// HealthPollInterval is the cadence of the upstream health probe.
	HealthPollInterval time.Duration `env:"HEALTH_POLL_INTERVAL" envDefault:"30s"`
}
