// Package qlogic is the client for the QLogic turn router.
package qlogic

import (
	"context"
	"net/http"

	"github.com/reaich/cabreaich-common/pkg/client"
	"github.com/reaich/cabreaich-common/pkg/config"
	"github.com/reaich/cabreaich-common/pkg/models"
)

// ServiceName labels the client in logs and metrics.
const ServiceName = "qlogic"

// RouteTurnPath is the routing endpoint.
const RouteTurnPath = "/qlogic/route_turn"

// Client asks QLogic what the next action of a session should be.
type Client struct {
	base *client.Base
}

// New creates a client for QLogic at baseURL.
func New(baseURL string, opts ...client.Option) (*Client, error) {
	opts = append([]client.Option{client.WithName(ServiceName)}, opts...)
	b, err := client.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{base: b}, nil
}

// NewFromSettings creates a client using the URL and timeout in s. A nil s
// uses config.Default().
func NewFromSettings(s *config.Settings, opts ...client.Option) (*Client, error) {
	if s == nil {
		s = config.Default()
	}
	opts = append([]client.Option{client.WithTimeout(s.RequestTimeout.Std())}, opts...)
	return New(s.QLogicRouteURL, opts...)
}

// Base returns the underlying base client.
func (c *Client) Base() *client.Base { return c.base }

// Close releases the client. A shared pool stays open.
func (c *Client) Close() error { return c.base.Close() }

// RouteTurn sends a turn to QLogic and returns its routing decision. The
// input is validated first; the module context and timestamp are defaulted
// on a copy when unset. A response without a string type, or that is not
// JSON, fails with a DecodeError.
func (c *Client) RouteTurn(ctx context.Context, in *models.QLogicTurnInput) (*models.RoutingResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, c.base.Reject(ctx, http.MethodPost, RouteTurnPath, err)
	}

	body := *in
	body.ApplyDefaults()

	resp, err := client.CallAs[models.RoutingResponse](ctx, c.base, client.Request{
		Method: http.MethodPost,
		Path:   RouteTurnPath,
		Body:   &body,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
