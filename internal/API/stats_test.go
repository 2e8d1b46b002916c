package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardFreshSeesChangedStats(t *testing.T) {
	assert := assert.New(t)

	var statsCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/stats":
			n := atomic.AddInt32(&statsCalls, 1)
			fmt.Fprintf(w, `{"success":true,"data":{"totalUsers":%d}}`, 100+n)
		case "/admin/activity":
			fmt.Fprint(w, `{"success":true,"data":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	ctx := context.Background()

	first, err := client.LoadDashboard(ctx, 10)
	require.NoError(t, err)
	assert.Equal(101, first.Stats.TotalUsers)

	// A plain reload inside the TTL serves the cached snapshot.
	cached, err := client.LoadDashboard(ctx, 10)
	require.NoError(t, err)
	assert.Equal(101, cached.Stats.TotalUsers)
	assert.EqualValues(1, atomic.LoadInt32(&statsCalls))

	// The watch loop's refresh path must hit the network every time.
	fresh, err := client.LoadDashboardFresh(ctx, 10)
	require.NoError(t, err)
	assert.Equal(102, fresh.Stats.TotalUsers)
	assert.EqualValues(2, atomic.LoadInt32(&statsCalls))

	fresh, err = client.LoadDashboardFresh(ctx, 10)
	require.NoError(t, err)
	assert.Equal(103, fresh.Stats.TotalUsers)
	assert.EqualValues(3, atomic.LoadInt32(&statsCalls))
}
