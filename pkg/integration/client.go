// Package integration is the client for the Integration API.
package integration

import (
	"context"
	"net/http"
	"reflect"

	"github.com/reaich/cabreaich-common/pkg/client"
	"github.com/reaich/cabreaich-common/pkg/config"
	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/models"
)

// ServiceName labels the client in logs and metrics.
const ServiceName = "integration"

// EventPath is the endpoint receiving container events.
const EventPath = "/integration/event"

// Client posts events to the Integration API.
type Client struct {
	base *client.Base
}

// New creates a client for the Integration API at baseURL.
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
	return New(s.IntegrationAPIURL, opts...)
}

// Base returns the underlying base client.
func (c *Client) Base() *client.Base { return c.base }

// Close releases the client. A shared pool stays open.
func (c *Client) Close() error { return c.base.Close() }

// PostEvent sends event as JSON to the event endpoint and returns the
// decoded response: parsed JSON, or raw text when the body is not JSON.
// A nil event fails with a ValidationError before anything is sent.
func (c *Client) PostEvent(ctx context.Context, event any) (client.Result, error) {
	if isNil(event) {
		err := &cerrors.ValidationError{Field: "event", Message: "event is required"}
		return client.Result{}, c.base.Reject(ctx, http.MethodPost, EventPath, err)
	}
	return c.base.Call(ctx, client.Request{
		Method: http.MethodPost,
		Path:   EventPath,
		Body:   event,
	})
}

// PostVADEvent validates and sends a VAD event.
func (c *Client) PostVADEvent(ctx context.Context, event *models.VADEventData) (client.Result, error) {
	if err := event.Validate(); err != nil {
		return client.Result{}, c.base.Reject(ctx, http.MethodPost, EventPath, err)
	}
	return c.PostEvent(ctx, event)
}

// PostTimingFlags validates and sends VAD timing flags.
func (c *Client) PostTimingFlags(ctx context.Context, flags *models.VADTimingFlagsData) (client.Result, error) {
	if err := flags.Validate(); err != nil {
		return client.Result{}, c.base.Reject(ctx, http.MethodPost, EventPath, err)
	}
	return c.PostEvent(ctx, flags)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
