// Package speech is the client for the speech container's control API.
package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/reaich/cabreaich-common/pkg/client"
	"github.com/reaich/cabreaich-common/pkg/config"
	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// ServiceName labels the client in logs and metrics.
const ServiceName = "speech"

// AudioAction is an audio control command.
type AudioAction string

const (
	ActionPause  AudioAction = "pause"
	ActionResume AudioAction = "resume"
)

// Valid reports whether a is pause or resume.
func (a AudioAction) Valid() bool {
	return a == ActionPause || a == ActionResume
}

// Client controls audio capture in the speech container.
type Client struct {
	base *client.Base
}

// New creates a client for the speech API at baseURL.
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
	return New(s.SpeechAPIURL, opts...)
}

// Base returns the underlying base client.
func (c *Client) Base() *client.Base { return c.base }

// Close releases the client. A shared pool stays open.
func (c *Client) Close() error { return c.base.Close() }

// AudioPath returns the control endpoint for a session and action.
func AudioPath(sessionID string, action AudioAction) string {
	return fmt.Sprintf("/session/%s/audio/%s", url.PathEscape(sessionID), url.PathEscape(string(action)))
}

// ControlAudio pauses or resumes audio for a session. An action other than
// pause or resume, or an empty session ID, fails with a ValidationError
// before anything is sent.
func (c *Client) ControlAudio(ctx context.Context, sessionID string, action AudioAction) (client.Result, error) {
	path := AudioPath(sessionID, action)
	if err := validate(sessionID, action); err != nil {
		return client.Result{}, c.base.Reject(ctx, http.MethodPost, path, err)
	}
	return c.base.Call(ctx, client.Request{
		Method: http.MethodPost,
		Path:   path,
	})
}

// ControlSession is ControlAudio for a UUID session ID.
func (c *Client) ControlSession(ctx context.Context, sessionID uuid.UUID, action AudioAction) (client.Result, error) {
	return c.ControlAudio(ctx, sessionID.String(), action)
}

// Pause pauses audio for a session.
func (c *Client) Pause(ctx context.Context, sessionID string) (client.Result, error) {
	return c.ControlAudio(ctx, sessionID, ActionPause)
}

// Resume resumes audio for a session.
func (c *Client) Resume(ctx context.Context, sessionID string) (client.Result, error) {
	return c.ControlAudio(ctx, sessionID, ActionResume)
}

func validate(sessionID string, action AudioAction) error {
	if !action.Valid() {
		return &cerrors.ValidationError{
			Field:      "action",
			Message:    fmt.Sprintf("invalid audio action %q", action),
			Suggestion: "use pause or resume",
		}
	}
	switch strings.TrimSpace(sessionID) {
	case "":
		return &cerrors.ValidationError{Field: "session_id", Message: "session ID is required"}
	case ".", "..":
		return &cerrors.ValidationError{Field: "session_id", Message: fmt.Sprintf("invalid session ID %q", sessionID)}
	}
	return nil
}
