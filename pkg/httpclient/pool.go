package httpclient

import (
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/reaich/cabreaich-common/pkg/telemetry"
)

// ErrPoolClosed is returned by Do after the pool has been closed.
var ErrPoolClosed = errors.New("httpclient: pool is closed")

// Pool is a keep-alive HTTP connection pool. It is safe for concurrent use
// by any number of clients; only its owner may Close it.
type Pool struct {
	client       *http.Client
	drainTimeout time.Duration

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup

	closeOnce sync.Once
}

// New creates a connection pool with the given configuration.
// The pool includes:
//   - TLS 1.2 minimum, TLS 1.3 preferred
//   - Connection pooling with the configured limits
//   - Request logging with sanitized URLs
//   - Correlation ID propagation
//   - Redirect following when cfg.FollowRedirects is set
//
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	var rt http.RoundTripper = newLoggingTransport(baseTransport, cfg.UserAgent, cfg.Logger)
	rt = &telemetry.RoundTripper{Transport: rt}

	client := &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Pool{client: client, drainTimeout: cfg.DrainTimeout}, nil
}

// Wrap adapts an existing *http.Client into a Pool. Closing the returned
// Pool closes the client's idle connections.
func Wrap(c *http.Client) *Pool {
	if c == nil {
		c = &http.Client{}
	}
	return &Pool{client: c, drainTimeout: DefaultConfig().DrainTimeout}
}

// Do sends req over the pool. It fails with ErrPoolClosed once Close has
// been called.
func (p *Pool) Do(req *http.Request) (*http.Response, error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrPoolClosed
	}
	p.inflight.Add(1)
	p.mu.RUnlock()
	defer p.inflight.Done()

	return p.client.Do(req)
}

// Close stops accepting requests, waits up to the drain timeout for
// in-flight requests to receive their responses, and then closes idle
// connections. Calling Close more than once is a no-op.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.inflight.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(p.drainTimeout):
		}

		p.client.CloseIdleConnections()
	})
	return nil
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// HTTPClient returns the underlying client. Requests sent through it bypass
// the closed check.
func (p *Pool) HTTPClient() *http.Client {
	return p.client
}
