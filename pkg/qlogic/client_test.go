package qlogic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reaich/cabreaich-common/pkg/client"
	"github.com/reaich/cabreaich-common/pkg/config"
	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/httpclient"
	"github.com/reaich/cabreaich-common/pkg/models"
)

func newRouter(t *testing.T, status int, reply string) (*httptest.Server, chan map[string]any) {
	t.Helper()
	got := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteTurnPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		select {
		case got <- body:
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func turn() *models.QLogicTurnInput {
	stt := "red balloon"
	in := &models.QLogicTurnInput{ChildID: uuid.New(), SessionID: uuid.New(), STTText: &stt}
	return in
}

func TestRouteTurn(t *testing.T) {
	srv, got := newRouter(t, http.StatusOK, `{"type":"prompt","payload":{"text":"hi"}}`)
	c, err := New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	in := turn()
	resp, err := c.RouteTurn(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "prompt", resp.Type)
	assert.Equal(t, map[string]any{"text": "hi"}, resp.Payload)

	body := <-got
	assert.Equal(t, in.ChildID.String(), body["child_id"])
	assert.Equal(t, "red balloon", body["stt_text"])
	assert.Equal(t, models.DefaultModuleContext, body["module_context"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Empty(t, in.ModuleContext, "caller input is not modified")
}

func TestRouteTurn_DecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "routing unavailable"},
		{name: "missing type", reply: `{"payload":{}}`},
		{name: "numeric type", reply: `{"type":1}`},
		{name: "null type", reply: `{"type":null}`},
		{name: "null payload", reply: `{"type":"prompt","payload":null}`},
		{name: "payload not object", reply: `{"type":"prompt","payload":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newRouter(t, http.StatusOK, tt.reply)
			c, err := New(srv.URL)
			require.NoError(t, err)
			defer c.Close()

			resp, err := c.RouteTurn(context.Background(), turn())
			assert.Nil(t, resp)
			var de *cerrors.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, http.StatusOK, de.StatusCode)
		})
	}
}

func TestRouteTurn_OverloadedOnSharedPool(t *testing.T) {
	srv, _ := newRouter(t, http.StatusServiceUnavailable, "overloaded")

	pool, err := httpclient.New(httpclient.DefaultConfig())
	require.NoError(t, err)
	defer pool.Close()

	c, err := New(srv.URL, client.WithSharedPool(pool))
	require.NoError(t, err)

	_, err = c.RouteTurn(context.Background(), turn())

	var se *cerrors.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Contains(t, se.Error(), "overloaded")

	require.NoError(t, c.Close())
	assert.False(t, pool.Closed())

	other, err := New(srv.URL, client.WithSharedPool(pool))
	require.NoError(t, err)
	_, err = other.RouteTurn(context.Background(), turn())
	assert.ErrorIs(t, err, cerrors.ErrStatus, "the shared pool still serves requests")
}

func TestRouteTurn_InvalidInput(t *testing.T) {
	srv, got := newRouter(t, http.StatusOK, `{"type":"prompt"}`)
	c, err := New(srv.URL)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.RouteTurn(context.Background(), nil)
	assert.ErrorIs(t, err, cerrors.ErrValidation)

	_, err = c.RouteTurn(context.Background(), &models.QLogicTurnInput{SessionID: uuid.New()})
	assert.ErrorIs(t, err, cerrors.ErrValidation)

	assert.Empty(t, got)
}

func TestNewFromSettings(t *testing.T) {
	s := config.Default()
	s.QLogicRouteURL = "http://qlogic:8000"

	c, err := NewFromSettings(s)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Base().OwnsPool())
	assert.Equal(t, s.RequestTimeout.Std(), c.Base().Timeout())
	assert.Equal(t, ServiceName, c.Base().Name())
}
