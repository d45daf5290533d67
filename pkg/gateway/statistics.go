package gateway

import (
	"context"
	"fmt"
)

// ModelStatistics queries per-model daily request statistics.
func (c *Client) ModelStatistics(ctx context.Context, q ModelStatisticsQuery) ([]ModelStatisticsItem, error) {
	return Post[[]ModelStatisticsItem](ctx, c, "/statistics/models", q)
}

// QueryUsageLogs runs a filtered usage-log query. Admin surface.
func (c *Client) QueryUsageLogs(ctx context.Context, q UsageLogQuery) ([]UsageLogItem, error) {
	return Post[[]UsageLogItem](ctx, c, "/statistics/logs/query", q)
}

// MyUsageLogs returns the current user's usage logs.
func (c *Client) MyUsageLogs(ctx context.Context) ([]UsageLogItem, error) {
	return Get[[]UsageLogItem](ctx, c, "/statistics/logs/me")
}

// UserUsageLogs returns another user's usage logs. Root admin only.
func (c *Client) UserUsageLogs(ctx context.Context, userID int64) ([]UsageLogItem, error) {
	return Get[[]UsageLogItem](ctx, c, fmt.Sprintf("/statistics/logs/user/%d", userID))
}
