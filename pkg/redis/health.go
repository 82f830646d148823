package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthStatus represents the health status
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// HealthCheck is the outcome of a single ping
type HealthCheck struct {
	Status  HealthStatus
	Details map[string]string
}

// Health pings Redis within timeout and reports latency and pool usage.
func (c *Client) Health(ctx context.Context, timeout time.Duration) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.Ping(ctx)
	latency := time.Since(start)

	details := map[string]string{
		"addr":       c.config.Addr(),
		"latency_ms": strconv.FormatInt(latency.Milliseconds(), 10),
	}
	if stats := c.rdb.PoolStats(); stats != nil {
		details["total_conns"] = strconv.FormatUint(uint64(stats.TotalConns), 10)
		details["idle_conns"] = strconv.FormatUint(uint64(stats.IdleConns), 10)
	}

	if err != nil {
		details["message"] = err.Error()
		return HealthCheck{Status: StatusDown, Details: details}
	}
	details["message"] = string(StatusUp)
	return HealthCheck{Status: StatusUp, Details: details}
}
