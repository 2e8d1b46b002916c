package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	events "MoveDesk/internal/Events"
)

// memStore is an in-memory CredentialStore for tests.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func (m *memStore) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memStore) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memStore) Save(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memStore) Clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	had := m.access != "" || m.refresh != ""
	m.access, m.refresh = "", ""
	return had
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string, mutate func(*Config)) *Client {
	cfg := Config{
		BaseURL:    baseURL,
		Logger:     discardLogger(),
		RetryDelay: 5 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func envelopeHandler(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, _ := json.Marshal(data)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"success":true,"data":%s}`, raw)
	}
}

func TestRequestCachesRepeatedGETs(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		envelopeHandler([]string{"six step", "windmill"})(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	ctx := context.Background()

	first, err := client.Get(ctx, "/admin/moves", nil)
	require.NoError(t, err)

	second, err := client.Get(ctx, "/admin/moves", nil)
	require.NoError(t, err)

	assert.EqualValues(1, atomic.LoadInt32(&calls), "second read should come from cache")
	assert.Equal([]byte(first.Data), []byte(second.Data))

	t.Run("different query is a different key", func(t *testing.T) {
		_, err := client.Get(ctx, "/admin/moves?page=2", nil)
		require.NoError(t, err)
		assert.EqualValues(2, atomic.LoadInt32(&calls))
	})

	t.Run("SkipCache forces a network call", func(t *testing.T) {
		_, err := client.Get(ctx, "/admin/moves", &RequestOptions{SkipCache: true})
		require.NoError(t, err)
		assert.EqualValues(3, atomic.LoadInt32(&calls))
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		client.cache.now = func() time.Time { return time.Now().Add(DefaultCacheTTL + time.Minute) }
		_, err := client.Get(ctx, "/admin/moves", nil)
		require.NoError(t, err)
		assert.EqualValues(4, atomic.LoadInt32(&calls))
	})
}

func TestWritesAreNeverCached(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		envelopeHandler(map[string]any{"id": 7})(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	ctx := context.Background()

	_, err := client.Post(ctx, "/admin/moves", map[string]string{"name": "headspin"})
	require.NoError(t, err)
	_, err = client.Post(ctx, "/admin/moves", map[string]string{"name": "headspin"})
	require.NoError(t, err)

	assert.EqualValues(2, atomic.LoadInt32(&calls))
	assert.Zero(client.cache.Len())
}

func TestWriteInvalidatesCachedReads(t *testing.T) {
	assert := assert.New(t)

	var gets int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
		}
		envelopeHandler([]string{"windmill"})(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	ctx := context.Background()

	_, err := client.Get(ctx, "/admin/moves?status=published", nil)
	require.NoError(t, err)

	_, err = client.Post(ctx, "/admin/moves", map[string]string{"name": "flare"})
	require.NoError(t, err)

	_, err = client.Get(ctx, "/admin/moves?status=published", nil)
	require.NoError(t, err)
	assert.EqualValues(2, atomic.LoadInt32(&gets), "write should drop the cached list")
}

func TestRetriesServerErrors(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success":false,"error":"database unavailable"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/admin/users", nil)
	require.Error(t, err)

	assert.EqualValues(maxAttempts, atomic.LoadInt32(&calls))
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(ErrKindHTTP, apiErr.Kind)
	assert.Equal(http.StatusInternalServerError, apiErr.Status)
	assert.Equal("database unavailable", apiErr.Message)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"error":"user not found"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/admin/users/999", nil)
	require.Error(t, err)

	assert.EqualValues(1, atomic.LoadInt32(&calls))
	assert.True(IsStatus(err, http.StatusNotFound))
}

func TestTimeoutSurfacesAfterAllAttempts(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/admin/stats", &RequestOptions{Timeout: 30 * time.Millisecond})
	require.Error(t, err)

	assert.EqualValues(maxAttempts, atomic.LoadInt32(&calls))
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(ErrKindTimeout, apiErr.Kind)
}

func TestRetryDelaySeparatesAttempts(t *testing.T) {
	assert := assert.New(t)

	const delay = 40 * time.Millisecond

	var mu sync.Mutex
	var arrivals []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, func(cfg *Config) { cfg.RetryDelay = delay })

	_, err := client.Get(context.Background(), "/admin/stats", nil)
	require.Error(t, err)

	require.Len(t, arrivals, maxAttempts)
	for i := 1; i < len(arrivals); i++ {
		gap := arrivals[i].Sub(arrivals[i-1])
		assert.GreaterOrEqual(gap, delay, "attempts %d and %d arrived %s apart", i, i+1, gap)
	}
}

func TestRetryDelayAbortsOnCancel(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, func(cfg *Config) { cfg.RetryDelay = time.Second })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	started := time.Now()
	_, err := client.Get(ctx, "/admin/stats", nil)
	require.Error(t, err)

	assert.True(errors.Is(err, context.Canceled))
	assert.EqualValues(1, atomic.LoadInt32(&calls), "no attempt after cancellation")
	assert.Less(time.Since(started), time.Second, "cancel must cut the inter-attempt wait short")
}

func TestNetworkFailureIsRetriedAndNormalized(t *testing.T) {
	assert := assert.New(t)

	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url, nil)

	_, err := client.Get(context.Background(), "/admin/stats", nil)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(ErrKindNetwork, apiErr.Kind)
}

func TestMalformedBodyIsProtocolError(t *testing.T) {
	assert := assert.New(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, "<html>definitely not json</html>")
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/admin/users", nil)
	require.Error(t, err)

	assert.EqualValues(1, atomic.LoadInt32(&calls), "protocol errors are terminal")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(ErrKindProtocol, apiErr.Kind)
}

func TestEmptyBodyMapsToEmptyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	env, err := client.Delete(context.Background(), "/admin/moves/3")
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
}

func TestUnauthorizedClearsSessionAndSignalsOnce(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"error":"token expired"}`)
	}))
	defer server.Close()

	store := &memStore{access: "stale-token", refresh: "stale-refresh"}
	bus := events.NewBus()
	var signals int32
	bus.Subscribe(func(event events.Event) {
		if event == events.EventUnauthorized {
			atomic.AddInt32(&signals, 1)
		}
	})

	client := newTestClient(server.URL, func(cfg *Config) {
		cfg.Credentials = store
		cfg.Bus = bus
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Get(context.Background(), "/admin/users", &RequestOptions{SkipCache: true})
			assert.True(IsStatus(err, http.StatusUnauthorized))
		}()
	}
	wg.Wait()

	assert.Empty(store.AccessToken())
	assert.Empty(store.RefreshToken())
	assert.EqualValues(1, atomic.LoadInt32(&signals), "concurrent 401s must collapse to one signal")
}

func TestLogoutSuppressesUnauthorizedSignal(t *testing.T) {
	assert := assert.New(t)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"error":"token expired"}`)
	}))
	defer server.Close()

	store := &memStore{access: "stale-token", refresh: "stale-refresh"}
	bus := events.NewBus()
	var signals int32
	bus.Subscribe(func(event events.Event) {
		if event == events.EventUnauthorized {
			atomic.AddInt32(&signals, 1)
		}
	})

	client := newTestClient(server.URL, func(cfg *Config) {
		cfg.Credentials = store
		cfg.Bus = bus
	})

	err := client.Logout(context.Background())
	require.NoError(t, err, "a stale session is not a failed sign-out")

	assert.Equal("Bearer stale-token", gotAuth, "revocation still carries the old token")
	assert.Empty(store.AccessToken())
	assert.Zero(atomic.LoadInt32(&signals), "deliberate sign-out must not announce an expired session")
}

func TestRequestHeaders(t *testing.T) {
	assert := assert.New(t)

	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer server.Close()

	store := &memStore{access: "abc123"}
	client := newTestClient(server.URL, func(cfg *Config) { cfg.Credentials = store })

	_, err := client.Request(context.Background(), http.MethodPost, "/admin/moves",
		map[string]string{"name": "flare"}, &RequestOptions{Headers: map[string]string{"X-Trace": "trace-1"}})
	require.NoError(t, err)

	assert.Equal("Bearer abc123", got.Get("Authorization"))
	assert.Equal("application/json", got.Get("Accept"))
	assert.Equal("application/json", got.Get("Content-Type"))
	assert.Equal("trace-1", got.Get("X-Trace"))
	assert.NotEmpty(got.Get("X-Request-ID"))
	assert.NotEmpty(got.Get("Idempotency-Key"))

	t.Run("no auth header without a token", func(t *testing.T) {
		store.Clear()
		_, err := client.Get(context.Background(), "/admin/moves", &RequestOptions{SkipCache: true})
		require.NoError(t, err)
		assert.Empty(got.Get("Authorization"))
	})
}

func TestIdempotencyKeyStableAcrossAttempts(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	var mu sync.Mutex
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		mu.Unlock()

		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.Post(context.Background(), "/admin/moves", map[string]string{"name": "flare"})
	require.NoError(t, err)

	require.Len(t, keys, 3)
	assert.Equal(keys[0], keys[1])
	assert.Equal(keys[1], keys[2])

	_, err = client.Post(context.Background(), "/admin/moves", map[string]string{"name": "freeze"})
	require.NoError(t, err)
	mu.Lock()
	assert.NotEqual(keys[0], keys[len(keys)-1], "each logical call gets its own key")
	mu.Unlock()
}
