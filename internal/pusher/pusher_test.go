package pusher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/config"
	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssembler struct {
	snap models.Snapshot
}

func (s *stubAssembler) Assemble(ctx context.Context) models.Snapshot { return s.snap }

func newConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	t.Setenv("SERVER_URL", serverURL)
	t.Setenv("API_KEY", "secret-key")
	t.Setenv("PUSH_INTERVAL", "1")
	return config.New()
}

func TestSendPostsSnapshot(t *testing.T) {
	var got models.Snapshot
	var contentType, apiKey, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		apiKey = r.Header.Get("X-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	p := New(newConfig(t, ts.URL), nil)
	snap := models.Snapshot{Hostname: "node-1", Timestamp: time.Now().UTC()}
	require.NoError(t, p.Send(context.Background(), &snap))

	assert.Equal(t, "/api/v1/agents/metrics", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "secret-key", apiKey)
	assert.Equal(t, "node-1", got.Hostname)
}

func TestSendNonSuccessStatusIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	p := New(newConfig(t, ts.URL), nil)
	snap := models.Snapshot{Hostname: "node-1"}
	err := p.Send(context.Background(), &snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSendUnreachableEndpoint(t *testing.T) {
	p := New(newConfig(t, "http://127.0.0.1:1"), nil)
	snap := models.Snapshot{Hostname: "node-1"}
	err := p.Send(context.Background(), &snap)
	assert.Error(t, err, "failure indicator, not a panic")
}

func TestRunWithoutServerURLReturns(t *testing.T) {
	p := New(newConfig(t, ""), &stubAssembler{})

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately without a server URL")
	}
}

func TestRunContinuesAfterFailedTicks(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	p := New(newConfig(t, ts.URL), &stubAssembler{snap: models.Snapshot{Hostname: "node-1"}})

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	// One tick per second: a failing endpoint must not slow or stop the loop.
	assert.GreaterOrEqual(t, calls.Load(), int64(2))
}
