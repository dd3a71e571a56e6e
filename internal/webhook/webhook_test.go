package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

func testLogger() *logging.Logger {
	return logging.New(slog.LevelError, "text")
}

func TestSigner(t *testing.T) {
	signer := NewSigner("shared-secret")
	body := []byte(`{"event":"signal.created"}`)

	sig := signer.Sign(body)
	assert.NotEmpty(t, sig)
	assert.True(t, signer.Verify(body, sig))
	assert.False(t, signer.Verify(body, "deadbeef"))
	assert.False(t, NewSigner("other-secret").Verify(body, sig))
}

func TestRegistry(t *testing.T) {
	t.Run("matching by event name", func(t *testing.T) {
		registry, err := NewRegistry([]Subscriber{
			{ID: "ops", URL: "http://ops.local", Events: []string{"signal.created"}},
			{ID: "audit", URL: "http://audit.local", Events: []string{"analysis.completed"}},
			{ID: "all", URL: "http://all.local", Events: []string{"signal.created", "analysis.completed"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, registry.Len())

		matched := registry.Matching("signal.created")
		ids := make([]string, 0, len(matched))
		for _, sub := range matched {
			ids = append(ids, sub.ID)
		}
		assert.ElementsMatch(t, []string{"ops", "all"}, ids)

		assert.Empty(t, registry.Matching("unknown.event"))
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		_, err := NewRegistry([]Subscriber{
			{ID: "ops", URL: "http://a"},
			{ID: "ops", URL: "http://b"},
		})
		require.Error(t, err)
	})

	t.Run("missing url rejected", func(t *testing.T) {
		_, err := NewRegistry([]Subscriber{{ID: "ops"}})
		require.Error(t, err)
	})
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webhooks.yaml")
	content := `subscribers:
  - id: ops
    url: http://ops.local/hook
    secret: abc
    events: [signal.created]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	registry, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())
	require.Len(t, registry.Matching("signal.created"), 1)
	assert.Equal(t, "abc", registry.Matching("signal.created")[0].Secret)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDispatcher(t *testing.T) {
	t.Run("delivers signed payload", func(t *testing.T) {
		var gotSig string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSig = r.Header.Get(SignatureHeader)
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		registry, err := NewRegistry([]Subscriber{
			{ID: "ops", URL: server.URL, Secret: "s3cr3t", Events: []string{"signal.created"}},
		})
		require.NoError(t, err)

		d := NewDispatcher(registry, 5*time.Second, testLogger())
		d.Dispatch(context.Background(), "signal.created", map[string]string{"id": "sig1"})

		require.NotEmpty(t, gotBody)
		assert.True(t, NewSigner("s3cr3t").Verify(gotBody, gotSig))

		var p payload
		require.NoError(t, json.Unmarshal(gotBody, &p))
		assert.Equal(t, "signal.created", p.Event)
	})

	t.Run("failure does not block other subscribers", func(t *testing.T) {
		var delivered atomic.Int32
		healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			delivered.Add(1)
		}))
		defer healthy.Close()
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer failing.Close()

		registry, err := NewRegistry([]Subscriber{
			{ID: "bad", URL: failing.URL, Events: []string{"signal.created"}},
			{ID: "good", URL: healthy.URL, Events: []string{"signal.created"}},
		})
		require.NoError(t, err)

		d := NewDispatcher(registry, 5*time.Second, testLogger())
		d.Dispatch(context.Background(), "signal.created", nil)

		assert.Equal(t, int32(1), delivered.Load())
	})

	t.Run("unsubscribed events are skipped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("should not be called")
		}))
		defer server.Close()

		registry, err := NewRegistry([]Subscriber{
			{ID: "ops", URL: server.URL, Events: []string{"analysis.completed"}},
		})
		require.NoError(t, err)

		d := NewDispatcher(registry, time.Second, testLogger())
		d.Dispatch(context.Background(), "signal.created", nil)
	})
}
