package client

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/httpclient"
)

// DefaultTimeout applies when WithTimeout is not given.
const DefaultTimeout = 10 * time.Second

// DefaultName labels logs and metrics when WithName is not given.
const DefaultName = "client"

// Pool sends requests over pooled connections. *httpclient.Pool satisfies it.
type Pool interface {
	Do(req *http.Request) (*http.Response, error)
	Close() error
}

// Base is the handle shared by the service clients. Its fields never change
// after New returns, so a Base may be used from many goroutines at once.
type Base struct {
	name     string
	baseURL  *url.URL
	timeout  time.Duration
	pool     Pool
	ownsPool bool
	logger   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

type options struct {
	timeout   time.Duration
	pool      Pool
	name      string
	logger    *slog.Logger
	userAgent string
}

// Option configures a Base.
type Option func(*options)

// WithTimeout sets the default per-request timeout. Non-positive values
// keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSharedPool makes the client borrow p. The client never closes a
// borrowed pool.
func WithSharedPool(p Pool) Option {
	return func(o *options) {
		if isNilPool(p) {
			return
		}
		o.pool = p
	}
}

// isNilPool reports whether p is nil or a typed nil pointer.
func isNilPool(p Pool) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// WithHTTPClient makes the client borrow an existing *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.pool = httpclient.Wrap(c)
		}
	}
}

// WithName sets the service name used in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent of an owned pool. It has no effect
// on a borrowed pool.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// New creates a Base for baseURL. Without WithSharedPool or WithHTTPClient
// it creates and owns a new connection pool. It fails only when baseURL is
// not an absolute http or https URL.
func New(baseURL string, opts ...Option) (*Base, error) {
	o := options{
		timeout: DefaultTimeout,
		name:    DefaultName,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	b := &Base{
		name:    o.name,
		baseURL: u,
		timeout: o.timeout,
		logger:  o.logger.With("service", o.name),
	}

	if o.pool != nil {
		b.pool = o.pool
		b.logger.Debug("client initialized with shared pool", "base_url", u.String())
		return b, nil
	}

	// Requests are bounded by the Dispatch context deadline only.
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = 0
	cfg.Logger = o.logger
	if o.userAgent != "" {
		cfg.UserAgent = o.userAgent
	}
	pool, err := httpclient.New(cfg)
	if err != nil {
		return nil, &cerrors.ValidationError{
			Field:   "user_agent",
			Message: err.Error(),
		}
	}
	b.pool = pool
	b.ownsPool = true
	b.logger.Debug("client initialized with owned pool", "base_url", u.String())
	return b, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	invalid := func(msg string) error {
		return &cerrors.ValidationError{
			Field:      "base_url",
			Message:    msg,
			Suggestion: "use an absolute URL such as http://localhost:8000",
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalid("base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalid("base URL is malformed: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, invalid("base URL scheme must be http or https, got " + quoteOrEmpty(u.Scheme))
	}
	if u.Host == "" {
		return nil, invalid("base URL has no host")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "none"
	}
	return `"` + s + `"`
}

// Name returns the service name.
func (b *Base) Name() string { return b.name }

// BaseURL returns the base URL as a string.
func (b *Base) BaseURL() string { return b.baseURL.String() }

// Timeout returns the default per-request timeout.
func (b *Base) Timeout() time.Duration { return b.timeout }

// OwnsPool reports whether Close tears down the pool.
func (b *Base) OwnsPool() bool { return b.ownsPool }

// Logger returns the client's logger, already tagged with the service name.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Close releases the client. An owned pool is closed exactly once; a
// borrowed pool is left untouched. Close is safe to call more than once.
func (b *Base) Close() error {
	b.closeOnce.Do(func() {
		if !b.ownsPool {
			b.logger.Debug("skipping close for shared pool")
			return
		}
		b.closeErr = b.pool.Close()
		b.logger.Debug("closed owned pool", "error", b.closeErr)
	})
	return b.closeErr
}

// Scoped runs fn with c and closes c on every exit path, including a panic
// in fn. A close error is joined with the error returned by fn.
func Scoped[C io.Closer](c C, fn func(C) error) (err error) {
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(c)
}

