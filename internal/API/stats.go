package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

type PlatformStats struct {
	TotalUsers         int `json:"totalUsers"`
	ActiveUsers        int `json:"activeUsers"`
	TotalMoves         int `json:"totalMoves"`
	TotalStyles        int `json:"totalStyles"`
	PendingSubmissions int `json:"pendingSubmissions"`
}

type ActivityEntry struct {
	ID     int64     `json:"id"`
	Type   string    `json:"type"`
	Actor  string    `json:"actor"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}

// DashboardData is everything the overview screen renders in one shot.
type DashboardData struct {
	Stats    PlatformStats
	Activity []ActivityEntry
}

func (c *Client) GetStats(ctx context.Context) (*PlatformStats, error) {
	return c.getStats(ctx, nil)
}

func (c *Client) getStats(ctx context.Context, opts *RequestOptions) (*PlatformStats, error) {
	env, err := c.Get(ctx, "/admin/stats", opts)
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{}
	if err := env.Decode(stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (c *Client) GetRecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	return c.getRecentActivity(ctx, limit, nil)
}

func (c *Client) getRecentActivity(ctx context.Context, limit int, opts *RequestOptions) ([]ActivityEntry, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	env, err := c.Get(ctx, "/admin/activity"+encodeQuery(values), opts)
	if err != nil {
		return nil, err
	}

	var activity []ActivityEntry
	if err := env.Decode(&activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// LoadDashboard fetches stats and recent activity concurrently, mirroring the
// overview screen's parallel load. Each call still manages only its own
// timeout and retries.
func (c *Client) LoadDashboard(ctx context.Context, activityLimit int) (*DashboardData, error) {
	return c.loadDashboard(ctx, activityLimit, nil)
}

// LoadDashboardFresh bypasses the response cache; the watch loop uses it so
// every refresh observes server-side changes inside the cache TTL.
func (c *Client) LoadDashboardFresh(ctx context.Context, activityLimit int) (*DashboardData, error) {
	return c.loadDashboard(ctx, activityLimit, &RequestOptions{SkipCache: true})
}

func (c *Client) loadDashboard(ctx context.Context, activityLimit int, opts *RequestOptions) (*DashboardData, error) {
	data := &DashboardData{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stats, err := c.getStats(groupCtx, opts)
		if err != nil {
			return err
		}
		data.Stats = *stats
		return nil
	})
	group.Go(func() error {
		activity, err := c.getRecentActivity(groupCtx, activityLimit, opts)
		if err != nil {
			return err
		}
		data.Activity = activity
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}
