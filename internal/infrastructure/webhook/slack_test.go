package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaders-st/helpdesk/internal/shared/config"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

func newTestClient(url string, timeout time.Duration) *SlackClient {
	return NewSlackClient(&config.WebhookConfig{URL: url, Timeout: timeout}, logger.NewLogger())
}

func TestSlackClient_Broadcast(t *testing.T) {
	var captured struct {
		Text string `json:"text"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	ok := client.Broadcast(context.Background(), "New ticket TCK-00042 created")
	assert.True(t, ok)
	assert.Equal(t, "New ticket TCK-00042 created", captured.Text)
}

func TestSlackClient_BroadcastNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_token", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	assert.False(t, client.Broadcast(context.Background(), "msg"))
}

func TestSlackClient_BroadcastNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL, time.Second)
	assert.False(t, client.Broadcast(context.Background(), "msg"))
}

func TestSlackClient_BroadcastTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50*time.Millisecond)
	assert.False(t, client.Broadcast(context.Background(), "msg"))
}

func TestSlackClient_BroadcastEmptyURL(t *testing.T) {
	client := newTestClient("", time.Second)
	assert.False(t, client.Broadcast(context.Background(), "msg"))
}
