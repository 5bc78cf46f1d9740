package httpclient

import (
	"fmt"
	"log/slog"
	"time"
)

// Config configures a connection pool.
type Config struct {
	// Timeout is the total request timeout. Zero leaves requests bounded
	// only by their context deadline.
	// Default: 10s. Must be >= 0.
	Timeout time.Duration

	// FollowRedirects makes the pool follow 3xx responses.
	// Default: true
	FollowRedirects bool

	// UserAgent is the User-Agent header value.
	// Required. Must be non-empty.
	UserAgent string

	// MaxIdleConns caps idle connections across all hosts. Default: 100
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections per host. Default: 10
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays in the pool. Default: 90s
	IdleConnTimeout time.Duration

	// DrainTimeout bounds how long Close waits for in-flight requests. Default: 5s
	DrainTimeout time.Duration

	// Logger receives request logs. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultUserAgent is sent when the caller does not override Config.UserAgent.
const DefaultUserAgent = "cabreaich-common/1.0"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Second,
		FollowRedirects:     true,
		UserAgent:           DefaultUserAgent,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DrainTimeout:        5 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must be >= 0, got %d", c.MaxIdleConns)
	}
	if c.MaxIdleConnsPerHost < 0 {
		return fmt.Errorf("max_idle_conns_per_host must be >= 0, got %d", c.MaxIdleConnsPerHost)
	}
	if c.IdleConnTimeout < 0 {
		return fmt.Errorf("idle_conn_timeout must be >= 0, got %v", c.IdleConnTimeout)
	}
	if c.DrainTimeout < 0 {
		return fmt.Errorf("drain_timeout must be >= 0, got %v", c.DrainTimeout)
	}
	return nil
}
